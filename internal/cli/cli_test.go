package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KirkDiggler/realm-content/internal/catalog"
	"github.com/KirkDiggler/realm-content/internal/config"
	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var fixtures = map[string]string{
	"materials/catalog.json": `{
		"material_types": {"metals": {"items": [
			{"slug": "iron", "name": "Iron", "rarityWeight": 50, "itemTypeTraits": {"weapon": {}}}
		]}}
	}`,
	"items/catalog.json": `{
		"weapon_types": {"swords": {"items": [
			{"slug": "longsword", "name": "Longsword", "damage": "1d8", "material": "@materials/metals:iron"},
			{"slug": "rapier", "name": "Rapier", "material": "@materials/metals:mithril"},
			{"slug": "broken", "name": "Broken", "material": "@materials/:x"}
		]}}
	}`,
	"npcs/humans/names.json": `{
		"components": {"first": ["Bryn"]},
		"patterns": [{"template": "{first} the @materialRef/weapon", "socialClass": ["smith"]}]
	}`,
}

type CLITestSuite struct {
	suite.Suite
	root string
	app  *App
}

func (s *CLITestSuite) SetupTest() {
	s.root = s.T().TempDir()
	for name, body := range fixtures {
		path := filepath.Join(s.root, filepath.FromSlash(name))
		s.Require().NoError(os.MkdirAll(filepath.Dir(path), 0o755))
		s.Require().NoError(os.WriteFile(path, []byte(body), 0o644))
	}

	s.app = &App{Config: &config.Config{
		Content: config.ContentConfig{Root: s.root, Source: config.SourceFile},
		Generation: config.GenerationConfig{
			Seed:     3,
			Fallback: "Unknown",
			Aliases:  map[string]string{"materialRef": "materials"},
		},
	}}
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) run(args ...string) (string, error) {
	cmd := NewRootCommand(s.app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (s *CLITestSuite) TestResolve() {
	out, err := s.run("resolve", "@items/swords:longsword.damage")
	s.Require().NoError(err)
	s.Equal("1d8\n", out)
}

func (s *CLITestSuite) TestResolve_JSON() {
	out, err := s.run("resolve", "--json", "@items/swords:longsword")
	s.Require().NoError(err)
	s.Contains(out, `"slug":"longsword"`)
}

func (s *CLITestSuite) TestResolve_OptionalAbsent() {
	out, err := s.run("resolve", "@items/swords:axe?")
	s.Require().NoError(err)
	s.Equal("(absent)\n", out)
}

func (s *CLITestSuite) TestResolve_Missing() {
	_, err := s.run("resolve", "@items/swords:axe")
	s.True(rcerr.IsMissingReference(err))
}

func (s *CLITestSuite) TestTokenize() {
	out, err := s.run("tokenize", "{base} + @materialRef/weapon")
	s.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	s.Require().Len(lines, 2)
	s.Equal("component base", strings.Join(strings.Fields(lines[0]), " "))
	s.Equal("reference @materialRef/weapon", strings.Join(strings.Fields(lines[1]), " "))
}

func (s *CLITestSuite) TestPattern() {
	out, err := s.run("pattern", "--component", "base=Sword:100", "@materialRef/weapon {base}")
	s.Require().NoError(err)
	s.Equal("Iron Sword\n", out)
}

func (s *CLITestSuite) TestName() {
	out, err := s.run("name", "npcs/humans", "--count", "2", "--social-class", "smith")
	s.Require().NoError(err)
	s.Equal("Bryn the Iron\nBryn the Iron\n", out)
}

func (s *CLITestSuite) TestValidate() {
	out, err := s.run("validate", "items")
	s.True(rcerr.IsInvalidArgument(err))

	s.Contains(out, "warning $.weapon_types.swords.items[1].material")
	s.Contains(out, "error $.weapon_types.swords.items[2].material")
	s.NotContains(out, "items[0]")
	s.Contains(out, "checked 1 documents")
}

func (s *CLITestSuite) TestValidate_AllClean() {
	out, err := s.run("validate", "materials")
	s.Require().NoError(err)
	s.Equal("checked 1 documents\n", out)

	_, err = s.run("validate")
	s.True(rcerr.IsInvalidArgument(err))
}

func (s *CLITestSuite) TestImportContent_ToDir() {
	target := s.T().TempDir()

	out, err := s.run("import", "content", "--to", "dir", "--dir", target)
	s.Require().NoError(err)
	s.Contains(out, "imported 3 documents")

	keys, err := catalog.NewFileSource(target).List(context.Background())
	s.Require().NoError(err)
	s.Len(keys, 3)
}

func (s *CLITestSuite) TestImport_BadTarget() {
	_, err := s.run("import", "content", "--to", "dir")
	s.True(rcerr.IsInvalidArgument(err))

	_, err = s.run("import", "content", "--to", "s3")
	s.True(rcerr.IsInvalidArgument(err))

	_, err = s.run("import", "srd", "--to", "redis")
	s.True(rcerr.IsInvalidArgument(err))
}

func TestParseComponents(t *testing.T) {
	comps, err := parseComponents([]string{"base=Sword:3", "base=Axe", "suffix=of Ash"})
	require.NoError(t, err)

	require.Len(t, comps["base"], 2)
	assert.Equal(t, "Sword", comps["base"][0].Value)
	assert.Equal(t, 3, comps["base"][0].Weight)
	assert.Equal(t, 1, comps["base"][1].Weight)
	assert.Equal(t, "of Ash", comps["suffix"][0].Value)

	for _, bad := range []string{"base", "=Sword", "base=Sword:heavy"} {
		_, err := parseComponents([]string{bad})
		assert.True(t, rcerr.IsInvalidArgument(err), bad)
	}
}
