// Command coursegen prints a generated course as YAML: the block list and
// the bounds geometry for a seed, length and kind list.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/rollcourse/levels"
	"github.com/milk9111/rollcourse/logging"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type courseDoc struct {
	Seed   uint64     `yaml:"seed"`
	Length int        `yaml:"length"`
	Blocks []blockDoc `yaml:"blocks"`
	Bounds boundsDoc  `yaml:"bounds"`
}

type blockDoc struct {
	Index    int              `yaml:"index"`
	Kind     levels.BlockKind `yaml:"kind"`
	Position mgl64.Vec3       `yaml:"position,flow"`
	Seed     uint64           `yaml:"seed,omitempty"`
	Phase    float64          `yaml:"phase,omitempty"`
	Speed    float64          `yaml:"speed,omitempty"`
}

type boxDoc struct {
	Center      mgl64.Vec3 `yaml:"center,flow"`
	HalfExtents mgl64.Vec3 `yaml:"half_extents,flow"`
}

type boundsDoc struct {
	Left  boxDoc `yaml:"left"`
	Right boxDoc `yaml:"right"`
	End   boxDoc `yaml:"end"`
	Floor boxDoc `yaml:"floor"`
}

func parseKinds(s string) ([]levels.BlockKind, error) {
	var kinds []levels.BlockKind
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k, err := levels.ParseBlockKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func buildDoc(seed uint64, length int, kinds []levels.BlockKind) (courseDoc, error) {
	blocks, err := levels.Generate(levels.Config{Length: length, Kinds: kinds}, levels.NewRand(seed))
	if err != nil {
		return courseDoc{}, err
	}

	doc := courseDoc{Seed: seed, Length: length}
	for _, b := range blocks {
		bd := blockDoc{Index: b.Index, Kind: b.Kind, Position: b.Position}
		if b.Kind.IsObstacle() {
			bd.Seed = b.Seed
			bd.Phase = b.Obstacle.Phase
			bd.Speed = b.Obstacle.Speed
		}
		doc.Blocks = append(doc.Blocks, bd)
	}

	box := func(b levels.Box) boxDoc { return boxDoc{Center: b.Center, HalfExtents: b.HalfExtents} }
	bounds := levels.Bounds(levels.CourseLength(blocks))
	doc.Bounds = boundsDoc{
		Left:  box(bounds.Left),
		Right: box(bounds.Right),
		End:   box(bounds.End),
		Floor: box(bounds.Floor),
	}
	return doc, nil
}

func writeDoc(w io.Writer, doc courseDoc) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("coursegen: encode: %w", err)
	}
	return enc.Close()
}

func main() {
	seed := flag.Uint64("seed", 0, "course seed (0 picks a random one)")
	length := flag.Int("length", 10, "number of obstacle blocks")
	kindList := flag.String("kinds", "spinner,limbo,limbo_axe", "comma separated obstacle kinds")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	logger, err := logging.New(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	kinds, err := parseKinds(*kindList)
	if err != nil {
		logger.Fatal("parse kinds", zap.Error(err))
	}
	if *seed == 0 {
		*seed = levels.RandomSeed()
	}

	doc, err := buildDoc(*seed, *length, kinds)
	if err != nil {
		logger.Fatal("generate course", zap.Error(err))
	}
	logger.Debug("generated course", zap.Uint64("seed", doc.Seed), zap.Int("blocks", len(doc.Blocks)))

	if err := writeDoc(os.Stdout, doc); err != nil {
		logger.Fatal("write course", zap.Error(err))
	}
}
