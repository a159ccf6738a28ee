package codegen

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/pgforge/introspect"
)

// SchemaSource provides the catalog metadata for a generation run.
// *introspect.Inspector implements it.
type SchemaSource interface {
	Schema(ctx context.Context) ([]introspect.Table, error)
}

// File is one rendered output document. Name is a path relative to the
// output root; writing it anywhere is the external writer's job.
type File struct {
	Name    string
	Content string
}

// Result is the outcome of a Generate run. Errors are captured into the
// result rather than returned, so a host process can report a failed
// multi-table run without crashing.
type Result struct {
	Success bool
	Message string
	Files   []File
	Tables  []string
}

// Generate introspects the schema and renders the configured output
// layout. It never returns an error: any failure produces a Result with
// Success false and the error text as Message.
func Generate(ctx context.Context, src SchemaSource, cfg Config) Result {
	if err := cfg.Normalize(); err != nil {
		return failure(err)
	}
	tables, err := src.Schema(ctx)
	if err != nil {
		return failure(err)
	}
	exports := Exports(tables)
	files, err := renderFiles(ctx, tables, exports, cfg)
	if err != nil {
		return failure(err)
	}
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return Result{Success: true, Files: files, Tables: names}
}

func failure(err error) Result {
	return Result{Success: false, Message: err.Error(), Files: []File{}, Tables: []string{}}
}

func renderFiles(ctx context.Context, tables []introspect.Table, exports []Export, cfg Config) ([]File, error) {
	switch cfg.Target {
	case TargetGo:
		return renderGo(tables, exports, cfg)
	case TargetGraphQL:
		// SDL has no import mechanism to re-export from, so the GraphQL
		// target always emits one document.
		return []File{{Name: "schema.graphql", Content: GraphQLDocument(tables, exports)}}, nil
	default:
		return renderTypeScript(ctx, tables, exports, cfg)
	}
}

func renderGo(tables []introspect.Table, exports []Export, cfg Config) ([]File, error) {
	if cfg.Mode == ModeSingle {
		content, err := GoFile(cfg.Package, tables, exports)
		if err != nil {
			return nil, err
		}
		return []File{{Name: "models.go", Content: content}}, nil
	}
	files := make([]File, len(tables))
	for i, t := range tables {
		content, err := GoFile(cfg.Package, []introspect.Table{t}, exports[i:i+1])
		if err != nil {
			return nil, err
		}
		files[i] = File{Name: t.Name + ".go", Content: content}
	}
	return files, nil
}

func renderTypeScript(ctx context.Context, tables []introspect.Table, exports []Export, cfg Config) ([]File, error) {
	if cfg.Mode == ModeSingle {
		var b strings.Builder
		for i, t := range tables {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(TSInterface(exports[i].Name, t))
		}
		if len(tables) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(tsExportMap(exports))
		return []File{{Name: "index.ts", Content: b.String()}}, nil
	}

	// One document per table. Rendering is pure, so it may fan out;
	// introspection round trips already happened sequentially.
	files := make([]File, len(tables)+1)
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, t := range tables {
		eg.Go(func() error {
			files[i] = File{
				Name:    t.Name + ".ts",
				Content: TSInterface(exports[i].Name, t),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var index strings.Builder
	for _, e := range exports {
		fmt.Fprintf(&index, "export { %s } from %q;\n", e.Name, "./"+e.Table)
	}
	if len(exports) > 0 {
		index.WriteString("\n")
	}
	index.WriteString(tsExportMap(exports))
	files[len(tables)] = File{Name: "index.ts", Content: index.String()}
	return files, nil
}
