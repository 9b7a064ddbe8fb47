// shadertool is a CLI utility for inspecting combined .shader resources.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/glsandbox/internal/shadersrc"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "split":
		err = cmdSplit(args)
	case "show", "cat":
		err = cmdShow(args)
	case "check":
		err = cmdCheck(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`shadertool - combined shader resource utility

Usage:
  shadertool <command> [options]

Commands:
  split <file.shader> [outdir]        Write <name>.vert and <name>.frag
  show <file.shader> [stage]          Print one or both sections
  check <file.shader>                 Fail if a section is empty

Examples:
  shadertool split res/shaders/basic.shader ./out
  shadertool show res/shaders/basic.shader fragment
  shadertool check res/shaders/basic.shader`)
}

func cmdSplit(args []string) error {
	fs := flag.NewFlagSet("split", flag.ExitOnError)
	force := fs.Bool("f", false, "Overwrite existing files")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: shadertool split [-f] <file.shader> [outdir]")
	}

	path := fs.Arg(0)
	outDir := filepath.Dir(path)
	if fs.NArg() > 1 {
		outDir = fs.Arg(1)
	}

	src, err := shadersrc.Load(path)
	if err != nil {
		return err
	}

	written, err := writeSections(src, outDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), *force)
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Println(p)
	}
	return nil
}

// writeSections writes each non-empty section to outDir/base.{vert,frag}.
func writeSections(src shadersrc.Source, outDir, base string, force bool) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	exts := map[string]string{
		shadersrc.VertexKeyword:   ".vert",
		shadersrc.FragmentKeyword: ".frag",
	}

	var written []string
	for _, st := range src.Stages() {
		if st.Text == "" {
			continue
		}
		out := filepath.Join(outDir, base+exts[st.Name])
		if !force {
			if _, err := os.Stat(out); err == nil {
				return written, fmt.Errorf("%s exists (use -f to overwrite)", out)
			}
		}
		if err := os.WriteFile(out, []byte(st.Text), 0644); err != nil {
			return written, err
		}
		written = append(written, out)
	}
	return written, nil
}

func cmdShow(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shadertool show <file.shader> [vertex|fragment]")
	}

	src, err := shadersrc.Load(args[0])
	if err != nil {
		return err
	}

	want := ""
	if len(args) > 1 {
		want = args[1]
		if want != shadersrc.VertexKeyword && want != shadersrc.FragmentKeyword {
			return fmt.Errorf("unknown stage %q", want)
		}
	}

	for _, st := range src.Stages() {
		if want != "" && st.Name != want {
			continue
		}
		if want == "" {
			fmt.Printf("// ---- %s ----\n", st.Name)
		}
		fmt.Print(st.Text)
	}
	return nil
}

func cmdCheck(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shadertool check <file.shader>")
	}

	src, err := shadersrc.Load(args[0])
	if err != nil {
		return err
	}

	var missing []string
	for _, st := range src.Stages() {
		lines := strings.Count(st.Text, "\n")
		fmt.Printf("%-10s %d lines\n", st.Name, lines)
		if st.Text == "" {
			missing = append(missing, st.Name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("empty section(s): %s", strings.Join(missing, ", "))
	}
	return nil
}
