package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/jsonschema"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "paths":
		pathsCmd(os.Args[2:])
	case "resolve":
		resolveCmd(os.Args[2:])
	case "export":
		exportCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "goshape CLI\n\nUsage:\n  goshape paths -schema file.(json|yaml) [-depth n]\n  goshape resolve -schema file.(json|yaml) -path p\n  goshape export -schema file.(json|yaml)\n\nNotes:\n  - Schemas are JSON Schema documents (a pragmatic subset; see jsonschema).")
}

func pathsCmd(args []string) {
	fs := flag.NewFlagSet("paths", flag.ExitOnError)
	var file string
	var depth int
	fs.StringVar(&file, "schema", "", "schema file (json or yaml)")
	fs.IntVar(&depth, "depth", goshape.DefaultMaxDepth, "depth budget for enumeration")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	s, reg := loadSchema(file)
	for p := range goshape.Paths(s, goshape.TraverseOpt{MaxDepth: depth, Registry: reg}) {
		fmt.Println(p)
	}
}

func resolveCmd(args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	var file string
	var path string
	fs.StringVar(&file, "schema", "", "schema file (json or yaml)")
	fs.StringVar(&path, "path", "", "access path to resolve")
	_ = fs.Parse(args)
	if file == "" || path == "" {
		fs.Usage()
		os.Exit(2)
	}
	s, reg := loadSchema(file)
	out, err := goshape.Resolve(s, path, goshape.TraverseOpt{Registry: reg})
	if err != nil {
		if goshape.IsUnresolvable(err) {
			fatalf("unresolvable: %s", path)
		}
		fatalf("resolve: %v", err)
	}
	fmt.Println(goshape.Sprint(out))
}

func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var file string
	fs.StringVar(&file, "schema", "", "schema file (json or yaml)")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	s, reg := loadSchema(file)
	doc, err := jsonschema.Export(s, reg)
	if err != nil {
		fatalf("export: %v", err)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		fatalf("marshal: %v", err)
	}
	fmt.Println(string(b))
}

func loadSchema(file string) (goshape.Schema, *goshape.Registry) {
	data, err := os.ReadFile(file)
	if err != nil {
		fatalf("read schema: %v", err)
	}
	var s goshape.Schema
	var reg *goshape.Registry
	var diag jsonschema.Diag
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		s, reg, diag, err = jsonschema.ImportYAML(data, jsonschema.Options{})
	default:
		s, reg, diag, err = jsonschema.Import(data, jsonschema.Options{})
	}
	if err != nil {
		fatalf("import schema: %v", err)
	}
	if diag != nil && diag.HasWarnings() {
		for _, w := range diag.Warnings() {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
	}
	return s, reg
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
