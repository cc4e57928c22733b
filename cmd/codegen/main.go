package main

import (
	"context"
	"fmt"
	"go/format"
	"go/token"
	"log"
	"os"
	"time"

	"github.com/delaneyj/proxyparty/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	packageKey = "package"
	typeKey    = "type"
	fieldKey   = "field"
	outKey     = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "codegen",
		Usage: "Generate typed accessors over an observed object",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     packageKey,
				Usage:    "Package of the generated file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     typeKey,
				Usage:    "Name of the generated type",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:     fieldKey,
				Usage:    "Field as key:type, repeatable",
				Required: true,
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "Output file, stdout when empty",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	typeName := cmd.String(typeKey)
	log.Printf("Codegen for %s started", typeName)
	defer func() {
		log.Printf("Codegen for %s finished in %v", typeName, time.Since(start))
	}()

	pkg := cmd.String(packageKey)
	if !token.IsIdentifier(pkg) {
		return fmt.Errorf("package %q is not an identifier", pkg)
	}
	if !token.IsIdentifier(typeName) || !token.IsExported(typeName) {
		return fmt.Errorf("type %q is not an exported identifier", typeName)
	}

	var fields []templates.Field
	for _, s := range cmd.StringSlice(fieldKey) {
		f, err := templates.ParseField(s)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}

	contents, err := format.Source([]byte(templates.Accessors(pkg, typeName, fields)))
	if err != nil {
		return fmt.Errorf("formatting generated code: %w", err)
	}

	out := cmd.String(outKey)
	if out == "" {
		_, err = os.Stdout.Write(contents)
		return err
	}
	if err := os.WriteFile(out, contents, 0644); err != nil {
		return err
	}
	return nil
}
