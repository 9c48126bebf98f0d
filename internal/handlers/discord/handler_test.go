package discord_test

import (
	"context"
	"testing"

	rcerr "github.com/KirkDiggler/realm-content/internal/errors"
	"github.com/KirkDiggler/realm-content/internal/handlers/discord"
	"github.com/KirkDiggler/realm-content/internal/resolver"
	"github.com/KirkDiggler/realm-content/internal/services/generation"
	mockgeneration "github.com/KirkDiggler/realm-content/internal/services/generation/mock"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type recordingResponder struct {
	responses []*discordgo.InteractionResponse
}

func (r *recordingResponder) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	r.responses = append(r.responses, resp)
	return nil
}

type recordingRegistrar struct {
	appID, guildID string
	commands       []*discordgo.ApplicationCommand
}

func (r *recordingRegistrar) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, _ ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	r.appID, r.guildID = appID, guildID
	r.commands = append(r.commands, cmd)
	return cmd, nil
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func command(sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "realm",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{{
				Name:    sub,
				Type:    discordgo.ApplicationCommandOptionSubCommand,
				Options: opts,
			}},
		},
	}
}

type HandlerTestSuite struct {
	suite.Suite
	ctx        context.Context
	ctrl       *gomock.Controller
	generation *mockgeneration.MockService
	responder  *recordingResponder
	handler    *discord.Handler
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.generation = mockgeneration.NewMockService(s.ctrl)
	s.responder = &recordingResponder{}

	h, err := discord.NewHandler(&discord.HandlerConfig{Generation: s.generation})
	s.Require().NoError(err)
	s.handler = h
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) onlyResponse() *discordgo.InteractionResponseData {
	s.Require().Len(s.responder.responses, 1)
	return s.responder.responses[0].Data
}

func (s *HandlerTestSuite) TestName_GeneratesCount() {
	s.generation.EXPECT().
		Run(s.ctx, gomock.Len(3)).
		DoAndReturn(func(_ context.Context, reqs []*generation.Request) ([]*generation.Result, error) {
			s.Equal(generation.KindName, reqs[0].Kind)
			s.Equal("npcs", reqs[0].Domain)
			s.Equal([]string{"humans"}, reqs[0].Path)
			s.Equal("noble", reqs[0].SocialClass)
			out := make([]*generation.Result, len(reqs))
			for i, req := range reqs {
				out[i] = &generation.Result{Request: req, Text: "Sir Bryn"}
			}
			return out, nil
		})

	err := s.handler.Handle(s.ctx, s.responder, command("name",
		strOpt("source", "npcs/humans"),
		strOpt("social_class", "noble"),
		intOpt("count", 3),
	))
	s.Require().NoError(err)

	data := s.onlyResponse()
	s.Require().Len(data.Embeds, 1)
	s.Equal("• Sir Bryn\n• Sir Bryn\n• Sir Bryn", data.Embeds[0].Description)
}

func (s *HandlerTestSuite) TestName_CountIsCapped() {
	s.generation.EXPECT().
		Run(s.ctx, gomock.Len(10)).
		Return(nil, nil)

	err := s.handler.Handle(s.ctx, s.responder, command("name", strOpt("source", "npcs"), intOpt("count", 50)))
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TestResolve() {
	req := &generation.Request{Kind: generation.KindResolve, Reference: "@items/weapons:longsword.damage", Scope: "weapon"}
	s.generation.EXPECT().
		Run(s.ctx, []*generation.Request{req}).
		Return([]*generation.Result{{
			Request:  req,
			Text:     "1d8",
			Resolved: &resolver.Result{Kind: resolver.KindPresent},
		}}, nil)

	err := s.handler.Handle(s.ctx, s.responder, command("resolve",
		strOpt("reference", "@items/weapons:longsword.damage"),
		strOpt("context", "weapon"),
	))
	s.Require().NoError(err)

	embed := s.onlyResponse().Embeds[0]
	s.Equal("1d8", embed.Description)
	s.Contains(embed.Title, "@items/weapons:longsword.damage")
}

func (s *HandlerTestSuite) TestPattern_MissingReferenceSuggests() {
	missing := rcerr.MissingReference("@items/weapons:longswrd", "").
		WithMeta(rcerr.MetaSuggestions, []string{"longsword"})
	s.generation.EXPECT().
		Run(s.ctx, gomock.Len(1)).
		Return([]*generation.Result{{Err: missing}}, nil)

	err := s.handler.Handle(s.ctx, s.responder, command("pattern", strOpt("pattern", "@items/weapons:longswrd")))
	s.Require().NoError(err)

	data := s.onlyResponse()
	s.Equal(discordgo.MessageFlagsEphemeral, data.Flags)
	s.Contains(data.Content, "Did you mean longsword?")
}

func (s *HandlerTestSuite) TestPattern_ParseError() {
	s.generation.EXPECT().
		Run(s.ctx, gomock.Len(1)).
		Return([]*generation.Result{{Err: rcerr.ParseError("@items:", 6, ":", "expected '/'")}}, nil)

	err := s.handler.Handle(s.ctx, s.responder, command("pattern", strOpt("pattern", "@items:")))
	s.Require().NoError(err)
	s.Contains(s.onlyResponse().Content, "position 6")
}

func (s *HandlerTestSuite) TestIgnoresOtherCommands() {
	other := command("name")
	other.Data = discordgo.ApplicationCommandInteractionData{Name: "dnd"}

	s.Require().NoError(s.handler.Handle(s.ctx, s.responder, other))
	s.Require().NoError(s.handler.Handle(s.ctx, s.responder, &discordgo.Interaction{Type: discordgo.InteractionPing}))
	s.Empty(s.responder.responses)
}

func (s *HandlerTestSuite) TestRegisterCommands() {
	registrar := &recordingRegistrar{}

	s.Require().NoError(s.handler.RegisterCommands(registrar, "app", "guild"))
	s.Equal("app", registrar.appID)
	s.Equal("guild", registrar.guildID)
	s.Require().Len(registrar.commands, 1)
	s.Equal("realm", registrar.commands[0].Name)
	s.Len(registrar.commands[0].Options, 3)
}

func TestNewHandler_RequiresGeneration(t *testing.T) {
	if _, err := discord.NewHandler(&discord.HandlerConfig{}); !rcerr.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
