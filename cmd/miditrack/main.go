package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vsariola/miditrack"
	"github.com/vsariola/miditrack/config"
	"github.com/vsariola/miditrack/midifile"
	"github.com/vsariola/miditrack/render"
	"github.com/vsariola/miditrack/tempo"
	"github.com/vsariola/miditrack/version"
)

func main() {
	safe := flag.Bool("n", false, "Never overwrite files; if file already exists and would be overwritten, give an error.")
	list := flag.Bool("l", false, "Do not write files; just list files that would change instead.")
	stdout := flag.Bool("s", false, "Do not write files; write to standard output instead.")
	help := flag.Bool("h", false, "Show help.")
	jsonOut := flag.Bool("j", false, "Output the tracks as a .json file.")
	yamlOut := flag.Bool("y", false, "Output the tracks as a .yml file.")
	midiOut := flag.Bool("m", false, "Output the tracks as a .mid file.")
	textOut := flag.Bool("x", false, "Output a text summary of the tracks.")
	tmplFile := flag.String("t", "", "Render the text output with the template in this file instead of the standard summary. Implies -x.")
	outPath := flag.String("o", "", "Directory or filename where to write the output. Extension is ignored. Directory and its parents are created if needed. By default, everything is placed in the same directory where the original file is.")
	strict := flag.Bool("strict", false, "Fail if any program number, controller number or controller value is out of range.")
	configPath := flag.String("c", "", "Read preferences from this file instead of the user config directory.")
	verbose := flag.Bool("v", false, "Print what is being done to standard error.")
	versionFlag := flag.Bool("version", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	var prefs config.Preferences
	var err error
	if *configPath != "" {
		prefs, err = config.LoadFile(*configPath)
	} else {
		prefs, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load preferences: %v\n", err)
		os.Exit(1)
	}
	*strict = *strict || prefs.Strict
	if *tmplFile != "" {
		*textOut = true
	}
	if !*jsonOut && !*yamlOut && !*midiOut && !*textOut {
		switch prefs.Output.Format {
		case "yaml":
			*yamlOut = true
		case "midi":
			*midiOut = true
		case "text":
			*textOut = true
		default:
			*jsonOut = true
		}
	}
	var renderer *render.Renderer
	if *textOut {
		if *tmplFile != "" {
			renderer, err = render.NewFromFile(*tmplFile)
		} else {
			renderer, err = render.New()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error creating renderer: %v\n", err)
			os.Exit(1)
		}
	}
	logf := func(format string, args ...any) {
		if *verbose {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	output := func(filename string, extension string, contents []byte) error {
		if *stdout {
			os.Stdout.Write(contents)
			return nil
		}
		dir, name := filepath.Split(filename)
		if *outPath != "" {
			// check if it's an already existing directory and the user just forgot trailing slash
			if info, err := os.Stat(*outPath); err == nil && info.IsDir() {
				dir = *outPath
			} else {
				outdir, outname := filepath.Split(*outPath)
				if outdir != "" {
					dir = outdir
				}
				if outname != "" {
					name = outname
				}
			}
		}
		name = strings.TrimSuffix(name, filepath.Ext(name)) + extension
		f := filepath.Join(dir, name)
		original, err := os.ReadFile(f)
		if err == nil {
			if bytes.Equal(original, contents) {
				return nil // no need to update
			}
			if !*list && *safe {
				return fmt.Errorf("file %v would be overwritten", f)
			}
		}
		if *list {
			fmt.Println(f)
			return nil
		}
		if dir != "" {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				return fmt.Errorf("could not create output directory %v: %v", dir, err)
			}
		}
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %v", f, err)
		}
		logf("wrote %v", f)
		return nil
	}
	process := func(filename string) error {
		logf("reading %v", filename)
		header, tracks, err := load(filename, prefs.Header)
		if err != nil {
			return err
		}
		logf("%v: %d tracks, resolution %d", filename, len(tracks), header.Resolution())
		if *strict {
			for i, t := range tracks {
				if err := t.Validate(); err != nil {
					return fmt.Errorf("track %d is invalid: %w", i, err)
				}
			}
		}
		if *jsonOut {
			doc := midifile.NewDocument(header, tracks)
			var jsonDoc []byte
			if prefs.Output.Indent != "" {
				jsonDoc, err = json.MarshalIndent(doc, "", prefs.Output.Indent)
			} else {
				jsonDoc, err = json.Marshal(doc)
			}
			if err != nil {
				return fmt.Errorf("could not marshal the tracks as json: %v", err)
			}
			if err := output(filename, ".json", jsonDoc); err != nil {
				return fmt.Errorf("error outputting json file: %v", err)
			}
		}
		if *yamlOut {
			yamlDoc, err := yaml.Marshal(midifile.NewDocument(header, tracks))
			if err != nil {
				return fmt.Errorf("could not marshal the tracks as yaml: %v", err)
			}
			if err := output(filename, ".yml", yamlDoc); err != nil {
				return fmt.Errorf("error outputting yaml file: %v", err)
			}
		}
		if *midiOut {
			var buf bytes.Buffer
			if err := midifile.Encode(&buf, header, tracks...); err != nil {
				return fmt.Errorf("could not encode the tracks as midi: %v", err)
			}
			if err := output(filename, ".mid", buf.Bytes()); err != nil {
				return fmt.Errorf("error outputting midi file: %v", err)
			}
		}
		if *textOut {
			var buf bytes.Buffer
			if err := renderer.Execute(&buf, header, tracks); err != nil {
				return err
			}
			if err := output(filename, ".txt", buf.Bytes()); err != nil {
				return fmt.Errorf("error outputting text file: %v", err)
			}
		}
		return nil
	}
	retval := 0
	for _, param := range flag.Args() {
		files := []string{param}
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			files = nil
			for _, pattern := range []string{"*.mid", "*.midi", "*.json", "*.yml"} {
				matches, err := filepath.Glob(filepath.Join(param, pattern))
				if err != nil {
					fmt.Fprintf(os.Stderr, "could not glob the path %v for %v files: %v\n", param, pattern, err)
					retval = 1
					continue
				}
				files = append(files, matches...)
			}
		}
		for _, file := range files {
			if err := process(file); err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
				retval = 1
			}
		}
	}
	os.Exit(retval)
}

// load reads a .mid file, or a .json/.yml document. Documents without a
// header get one from the preferences.
func load(filename string, defaults config.HeaderPreferences) (*tempo.Map, []*miditrack.Track, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mid", ".midi":
		f, err := midifile.ReadFile(filename)
		if err != nil {
			return nil, nil, err
		}
		return f.Header, f.Tracks(), nil
	}
	inputBytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read file %v: %v", filename, err)
	}
	var doc midifile.Document
	if errJSON := json.Unmarshal(inputBytes, &doc); errJSON != nil {
		doc = midifile.Document{}
		if errYaml := yaml.Unmarshal(inputBytes, &doc); errYaml != nil {
			return nil, nil, fmt.Errorf("tracks could not be unmarshaled as a .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	if doc.Header.Resolution == 0 {
		doc.Header = tempo.Data{
			Resolution: defaults.Resolution,
			Tempos:     []tempo.Change{{Ticks: 0, BPM: defaults.BPM}},
		}
	}
	return doc.Load()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "miditrack converts the program and control changes of MIDI tracks between .mid, .json and .yml, or summarizes them as text.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
