package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"kvc/config"
	"kvc/kv"
	"kvc/state"
)

// buildOutputPath returns output file path for document compiled from src.
// It uses either source file name or user-defined template and keeps source
// directory structure unless asked not to. Path segments are cleaned and, if
// requested, transliterated.
func buildOutputPath(doc *kv.Document, src, dst string, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)

	if env.Cfg.Document.OutputNameTemplate != "" {
		if expanded := expandOutputNameTemplate(doc, src, env); expanded != "" {
			if name := assemblePathWithSubdirs(outDir, expanded, env); name != "" {
				return name
			}
		}
	}
	return filepath.Join(outDir, buildDefaultFileName(src, env))
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func buildDefaultFileName(src string, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return cleanPathSegment(baseName, env) + env.Format.Ext()
}

func expandOutputNameTemplate(doc *kv.Document, src string, env *state.LocalEnv) string {
	expanded, err := expandTemplate(doc, src, config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate, env.Format)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(expanded)
}

// assemblePathWithSubdirs turns expanded template (which may contain path
// separators for subdirectories) into full output path. Empty string is
// returned when nothing usable is left.
func assemblePathWithSubdirs(outDir, expanded string, env *state.LocalEnv) string {
	segments := splitPath(expanded)
	if len(segments) == 0 {
		return ""
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, segment := range segments {
		parts = append(parts, cleanPathSegment(segment, env))
	}
	parts[len(parts)-1] += env.Format.Ext()
	return filepath.Join(parts...)
}

// splitPath splits path into segments dropping empty ones and references to
// current and parent directories, result never leaves output directory.
func splitPath(path string) []string {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == os.PathSeparator || r == '/'
	})
	return slices.DeleteFunc(segments, func(s string) bool {
		s = strings.TrimSpace(s)
		return s == "" || s == "." || s == ".."
	})
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
