package kv

// Macro names recognized by ExpandMacro.
const (
	MacroDocument     = "!Document"
	MacroRocyonery    = "!Rocyonery"
	MacroFullwidth    = "!Fullwidth"
	MacroTitle        = "!Title"
	MacroSubtitle     = "!Subtitle"
	MacroSmartColumns = "!SmartColumns"
	MacroColumn       = "!Column"
)

// TagSmartColumns is the internal tag of !SmartColumns container, it is
// rendered as div.
const TagSmartColumns = "smc"

// ColumnPlaceholder stands for number of columns in the !Column style. It is
// resolved at render time by the nearest enclosing smc element.
const ColumnPlaceholder = "\x00"

type macro struct {
	tag   string
	style string
	text  string
	raw   bool
}

var macros = map[string]macro{
	MacroDocument: {
		tag:  "html",
		text: `<meta charset="utf-8">`,
		raw:  true,
	},
	MacroRocyonery: {
		tag:   "div",
		style: "background-color:#fdd;width:100%;height:60px;line-height:60px;text-align:center;",
		text:  "Создано с помощью дешаблонизатора от Rocyonery, Inc.",
	},
	MacroFullwidth: {
		tag:   "div",
		style: "width: 100%;",
	},
	MacroTitle: {
		tag:   "div",
		style: "width: 100%; height: 60px; line-height: 60px; font-size: 20px; text-align: center;",
	},
	MacroSubtitle: {
		tag:   "div",
		style: "width: 100%; font-size: 16px; text-align: center;",
	},
	MacroSmartColumns: {
		tag:   TagSmartColumns,
		style: "width: 100%;",
	},
	MacroColumn: {
		tag:   "div",
		style: "width: calc(100% / " + ColumnPlaceholder + " - 6px);display:inline-block;vertical-align:top;margin:3px;",
	},
}

// IsMacro reports whether name is expanded to a predefined skeleton.
func IsMacro(name string) bool {
	_, ok := macros[name]
	return ok
}

// ExpandMacro builds a fresh element for name in the document arena and
// returns its id. Unknown names produce bare element with that literal tag.
func ExpandMacro(d *Document, name string) NodeID {
	m, ok := macros[name]
	if !ok {
		return d.newElement(name, name)
	}

	id := d.newElement(m.tag, name)
	if m.style != "" {
		d.Node(id).SetAttr("style", m.style)
	}
	if m.text != "" {
		d.appendChild(id, d.newText(m.text, m.raw))
	}
	return id
}
