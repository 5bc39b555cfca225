// Package convert implements compile command: it finds kv sources, builds
// documents from them and writes rendered markup.
package convert

import (
	"archive/zip"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"kvc/archive"
	"kvc/common"
	"kvc/config"
	"kvc/css"
	"kvc/kv"
	"kvc/render"
	"kvc/state"
)

// StdoutDestination requests compiled markup to be written to standard output.
const StdoutDestination = "-"

// stdout is replaced in tests.
var stdout io.Writer = os.Stdout

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	switch {
	case dst == StdoutDestination:
	case len(dst) == 0:
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	default:
		if dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Format = env.Cfg.Document.OutputFormat
	if cmd.IsSet("to") {
		if env.Format, err = common.ParseOutputFmt(cmd.String("to")); err != nil {
			return err
		}
	}
	env.Escape = env.Cfg.Document.Escape || cmd.Bool("escape")
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	enc, name, err := config.LookupEncoding(env.Cfg.Document.SourceEncoding)
	if err != nil {
		return err
	}
	env.SourceEncoding = enc

	log.Info("Processing starting",
		zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format), zap.String("encoding", name))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := process(ctx, src, dst, log); err != nil {
		if failed := multierr.Errors(err); len(failed) > 1 {
			return fmt.Errorf("%d sources failed, first: %w", len(failed), failed[0])
		}
		return err
	}
	return nil
}

// process determines the input type (directory, archive, path inside of
// archive or single file) and processes it accordingly. Errors of individual
// documents are combined.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return processDir(ctx, head, dst, log)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			inside := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			return processArchive(ctx, head, inside, "", dst, log)
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		// single file is compiled regardless of its extension
		return processFile(ctx, head, filepath.Base(head), dst, log)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

func processFile(ctx context.Context, path, src, dst string, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		return err
	}
	defer file.Close()

	if err := processDocument(ctx, file, src, dst, log); err != nil {
		log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		return err
	}
	return nil
}

// processDir walks directory tree, compiles sources with configured
// extensions and looks into archives. Files are processed in natural order
// of their paths.
func processDir(ctx context.Context, dir, dst string, log *zap.Logger) error {
	exts := state.EnvFromContext(ctx).Cfg.Document.Extensions

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	slices.SortFunc(paths, naturalOrder)

	var (
		errs  error
		count int
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		if isArchive {
			count++
			if err := processArchive(ctx, path, "", filepath.Dir(rel), dst, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
				errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
			}
			continue
		}
		if !isSourceName(path, exts) {
			log.Debug("Skipping file, not recognized as source or archive", zap.String("file", path))
			continue
		}

		count++
		if err := processFile(ctx, path, rel, dst, log); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
		}
	}
	if count == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
	}
	return errs
}

func naturalOrder(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// processArchive compiles sources found in archive under pathIn. When pathIn
// names a single entry it is compiled regardless of its extension.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	match := archive.Extensions(env.Cfg.Document.Extensions...)
	if pathIn != "" {
		prefix := archive.Prefix(strings.TrimSuffix(pathIn, "/") + "/")
		match = func(name string) bool {
			return name == pathIn || (prefix(name) && isSourceName(name, env.Cfg.Document.Extensions))
		}
	}

	var (
		errs  error
		count int
	)
	err := archive.Walk(path, match, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++

		name := f.FileHeader.Name
		if enc := env.SourceEncoding; enc != nil && f.FileHeader.NonUTF8 {
			// names of old archives are often in the same code page as content
			if n, err := enc.NewDecoder().String(name); err == nil {
				name = n
			} else {
				log.Warn("Unable to convert archive entry name", zap.String("path", name), zap.Error(err))
			}
		}

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			return nil
		}
		defer r.Close()

		if err := processDocument(ctx, r, filepath.Join(pathOut, filepath.FromSlash(name)), dst, log); err != nil {
			log.Error("Unable to process file in archive", zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return nil
	})
	if err != nil {
		return multierr.Append(errs, err)
	}
	if count == 0 {
		if pathIn != "" {
			return fmt.Errorf("input source was not found in archive (%s) => (%s)", path, pathIn)
		}
		log.Debug("Nothing to process", zap.String("archive", path))
	}
	return errs
}

// processDocument compiles single source. "src" is part of the source path
// (always including file name) relative to the original path: base file name
// when file was specified directly, relative path inside of directory or
// archive otherwise. "dst" is the destination directory or
// StdoutDestination.
func processDocument(ctx context.Context, r io.Reader, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	outputName := dst
	log.Info("Compilation starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Compilation ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("compilation panic: %v", r)
		} else if rerr == nil {
			log.Info("Compilation completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	decoded, enc, err := decodeSource(r, env.SourceEncoding)
	if err != nil {
		return err
	}
	if enc != encUnknown {
		log.Debug("Source starts with BOM", zap.Stringer("encoding", enc))
	}

	doc, err := kv.Build(ctx, decoded, log.Named("kv"))
	if err != nil {
		return fmt.Errorf("unable to build document (%s): %w", src, err)
	}
	env.Rpt.StoreData("tree-"+filepath.ToSlash(src)+".txt", []byte(doc.String()))
	if env.Cfg.Document.LintStyles {
		lintStyles(doc, log)
	}

	opts := []render.Option{
		render.WithFormat(env.Format),
		render.WithEscaping(env.Escape),
		render.WithIndent(env.Cfg.Document.Indent),
	}

	if dst == StdoutDestination {
		outputName = "stdout"
		if err := render.Write(stdout, doc, opts...); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		return nil
	}

	outputName = buildOutputPath(doc, src, dst, env)
	if err := prepareOutput(outputName, env.Overwrite, log); err != nil {
		return err
	}
	if err := writeOutput(outputName, doc, opts); err != nil {
		return err
	}
	env.Rpt.Store("result-"+filepath.ToSlash(src)+env.Format.Ext(), outputName)
	return nil
}

// prepareOutput makes sure output file could be written.
func prepareOutput(name string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		return os.Remove(name)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

func writeOutput(name string, doc *kv.Document, opts []render.Option) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("unable to create output: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := render.Write(f, doc, opts...); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}

// lintStyles reports problems in style attributes. Column placeholders are
// resolved to a single column, any count produces the same syntax.
func lintStyles(doc *kv.Document, log *zap.Logger) {
	var path []string
	doc.Walk(func(id kv.NodeID, depth int) bool {
		n := doc.Node(id)
		if n.Kind != kv.KindElement {
			return false
		}
		path = append(path[:depth], cmp.Or(n.Source, n.Tag))

		style, ok := n.Attr("style")
		if !ok {
			return true
		}
		for _, w := range css.Lint(strings.ReplaceAll(style, kv.ColumnPlaceholder, "1")) {
			fields := []zap.Field{
				zap.String("element", strings.Join(path, "/")),
				zap.Stringer("kind", w.Kind),
				zap.String("property", w.Property),
				zap.String("problem", w.Message),
			}
			if w.Kind == css.WarnOverridden {
				log.Debug("Style property overridden", fields...)
				continue
			}
			log.Warn("Style problem", fields...)
		}
		return true
	})
}
