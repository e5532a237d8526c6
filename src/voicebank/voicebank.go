package voicebank

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/StickynoteStupid/utau/src/datastructures"
	"github.com/StickynoteStupid/utau/src/instances"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type toneAffix struct {
	prefix string
	suffix string
}

// Voicebank is a sample inventory loaded from an UTAU-style directory:
// oto.ini for the alias table, an optional prefix.map for per-tone alias
// affixes, and an optional character.json for metadata. Read-only once loaded.
type Voicebank struct {
	name      string
	inventory map[string]datastructures.UnitSample
	affixes   map[int]toneAffix
}

// Load reads a voicebank directory. Individually malformed lines are skipped
// with a debug log; missing optional files are fine, a missing oto.ini is not.
func Load(dir string) (instances.Voicebank, error) {
	vb := &Voicebank{
		name:      filepath.Base(dir),
		inventory: map[string]datastructures.UnitSample{},
		affixes:   map[int]toneAffix{},
	}

	var result error

	if err := vb.loadOto(filepath.Join(dir, "oto.ini")); err != nil {
		result = multierror.Append(result, err)
	}
	if err := vb.loadPrefixMap(filepath.Join(dir, "prefix.map")); err != nil && !os.IsNotExist(err) {
		result = multierror.Append(result, err)
	}
	if err := vb.loadMeta(filepath.Join(dir, "character.json")); err != nil && !os.IsNotExist(err) {
		result = multierror.Append(result, err)
	}

	if result != nil {
		return nil, result
	}

	logrus.WithFields(logrus.Fields{
		"name":    vb.name,
		"samples": len(vb.inventory),
		"affixes": len(vb.affixes),
	}).Debug("voicebank: loaded")

	return vb, nil
}

func (vb *Voicebank) Name() string {
	return vb.name
}

// TryResolveUnit maps a transition label to a sample. The tone-specific alias
// is preferred over the plain one so pitch-banked voices pick the right
// register.
func (vb *Voicebank) TryResolveUnit(label string, tone int) (datastructures.UnitSample, bool) {
	if affix, ok := vb.affixes[tone]; ok {
		if sample, ok := vb.inventory[affix.prefix+label+affix.suffix]; ok {
			return sample, true
		}
	}
	sample, ok := vb.inventory[label]
	return sample, ok
}

// loadOto parses `file.wav=alias,offset,consonant,cutoff,preutterance,overlap`
// lines. An empty alias defaults to the file name without extension.
func (vb *Voicebank) loadOto(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		kv := strings.SplitN(line, "=", 2)
		if len(kv) != 2 {
			logrus.WithField("line", line).Debug("voicebank: skipping malformed oto entry")
			continue
		}
		file := strings.TrimSpace(kv[0])
		params := strings.Split(kv[1], ",")
		alias := strings.TrimSpace(params[0])
		if alias == "" {
			alias = strings.TrimSuffix(file, filepath.Ext(file))
		}
		sample := datastructures.UnitSample{Alias: alias, File: file}
		nums := []*float64{&sample.Offset, &sample.Consonant, &sample.Cutoff, &sample.Preutterance, &sample.Overlap}
		for i, target := range nums {
			if i+1 >= len(params) {
				break
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(params[i+1]), 64); err == nil {
				*target = v
			}
		}
		vb.inventory[alias] = sample
	}
	return scanner.Err()
}

// loadPrefixMap parses `noteName<TAB>prefix<TAB>suffix` lines, note names in
// scientific pitch notation (C4 = 60).
func (vb *Voicebank) loadPrefixMap(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			logrus.WithField("line", line).Debug("voicebank: skipping malformed prefix.map entry")
			continue
		}
		tone, ok := noteNumber(strings.TrimSpace(parts[0]))
		if !ok {
			logrus.WithField("line", line).Debug("voicebank: skipping prefix.map entry with bad note name")
			continue
		}
		vb.affixes[tone] = toneAffix{prefix: parts[1], suffix: parts[2]}
	}
	return scanner.Err()
}

func (vb *Voicebank) loadMeta(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	meta := datastructures.VoicebankMeta{}
	if err := json.Unmarshal(data, &meta); err != nil {
		return err
	}
	if meta.Name != "" {
		vb.name = meta.Name
	}
	return nil
}

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// noteNumber converts a note name like "C4" or "D#5" to its midi number.
func noteNumber(name string) (int, bool) {
	if len(name) < 2 {
		return 0, false
	}
	semitone, ok := semitones[name[0]]
	if !ok {
		return 0, false
	}
	rest := name[1:]
	switch rest[0] {
	case '#':
		semitone++
		rest = rest[1:]
	case 'b':
		semitone--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return (octave+1)*12 + semitone, true
}
