// Package commands implements the /depth slash command group: transcript
// analysis from an option string, a file attachment, a paste modal, or the
// built-in demo pair.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MrWong99/rapport/internal/demo"
	"github.com/MrWong99/rapport/internal/discord"
	"github.com/MrWong99/rapport/internal/observe"
	"github.com/MrWong99/rapport/internal/report"
	"github.com/MrWong99/rapport/pkg/depth"
)

const (
	depthPasteModalID = "depth_paste"

	// maxTranscriptSize caps transcript attachments at 1 MB, matching the
	// web surface.
	maxTranscriptSize = 1 << 20

	analyzeTimeout  = 10 * time.Second
	downloadTimeout = 30 * time.Second
)

// Embed accent colors per label tier.
const (
	embedColorRed    = 0xE74C3C
	embedColorYellow = 0xF1C40F
	embedColorGreen  = 0x2ECC71
)

// DepthCommands holds the dependencies for /depth slash commands.
type DepthCommands struct {
	perms    *discord.PermissionChecker
	analyzer atomic.Pointer[depth.Analyzer]
	metrics  *observe.Metrics
}

// NewDepthCommands creates a DepthCommands using the given analyzer.
func NewDepthCommands(perms *discord.PermissionChecker, analyzer *depth.Analyzer, metrics *observe.Metrics) *DepthCommands {
	dc := &DepthCommands{
		perms:   perms,
		metrics: metrics,
	}
	dc.analyzer.Store(analyzer)
	return dc
}

// SetAnalyzer swaps the analyzer. In-flight commands keep the analyzer they
// started with.
func (dc *DepthCommands) SetAnalyzer(a *depth.Analyzer) {
	dc.analyzer.Store(a)
}

// Register registers the /depth command group with the router.
func (dc *DepthCommands) Register(router *discord.CommandRouter) {
	def := dc.Definition()
	router.RegisterCommand("depth", def, func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		discord.RespondEphemeral(s, i, "Please use a subcommand: `/depth text`, `/depth file`, `/depth paste`, or `/depth demo`.")
	})
	router.RegisterHandler("depth/text", func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		dc.handleText(s, i)
	})
	router.RegisterHandler("depth/file", func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		dc.handleFile(s, i)
	})
	router.RegisterHandler("depth/paste", func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		dc.handlePaste(s, i)
	})
	router.RegisterHandler("depth/demo", func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		dc.handleDemo(s, i)
	})

	router.RegisterModal(depthPasteModalID, func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		dc.handlePasteModal(s, i)
	})
}

// Definition returns the /depth ApplicationCommand for Discord registration.
func (dc *DepthCommands) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "depth",
		Description: "Score a human/AI conversation for connection depth",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "text",
				Description: "Analyze a transcript passed inline",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "transcript",
						Description: "Transcript with Human:/AI: speaker labels",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "file",
				Description: "Analyze an attached transcript file (.txt, .md, .log)",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionAttachment,
						Name:        "file",
						Description: "Transcript file",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "paste",
				Description: "Open a form to paste a multi-line transcript",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "demo",
				Description: "Compare the built-in shallow and deep example transcripts",
			},
		},
	}
}

// handleText analyzes the transcript given inline as a command option.
func (dc *DepthCommands) handleText(s discord.Responder, i *discordgo.InteractionCreate) {
	if !dc.perms.Allowed(i) {
		discord.RespondEphemeral(s, i, "You need the analyst role to run depth analysis.")
		return
	}

	var transcript string
	for _, opt := range subcommandOptions(i) {
		if opt.Name == "transcript" {
			transcript = opt.StringValue()
		}
	}
	if strings.TrimSpace(transcript) == "" {
		discord.RespondEphemeral(s, i, "Please provide a transcript.")
		return
	}

	res, err := dc.analyze(transcript)
	if err != nil {
		discord.RespondError(s, i, err)
		return
	}
	discord.RespondEmbed(s, i, resultEmbed("Connection Depth", res))
}

// handlePaste opens the transcript paste modal. Slash command options are
// single-line, so multi-line transcripts go through a form instead.
func (dc *DepthCommands) handlePaste(s discord.Responder, i *discordgo.InteractionCreate) {
	if !dc.perms.Allowed(i) {
		discord.RespondEphemeral(s, i, "You need the analyst role to run depth analysis.")
		return
	}

	discord.RespondModal(s, i, &discordgo.InteractionResponseData{
		CustomID: depthPasteModalID,
		Title:    "Analyze Transcript",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "depth_transcript",
					Label:       "Transcript",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "Human: What's it like for you?\nAI: Honestly, I find it fascinating...",
					Required:    new(true),
					MaxLength:   4000,
				},
			}},
		},
	})
}

// handlePasteModal processes the paste modal submission.
func (dc *DepthCommands) handlePasteModal(s discord.Responder, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()

	var transcript string
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range ar.Components {
			ti, ok := comp.(*discordgo.TextInput)
			if !ok {
				continue
			}
			if ti.CustomID == "depth_transcript" {
				transcript = ti.Value
			}
		}
	}

	if strings.TrimSpace(transcript) == "" {
		discord.RespondEphemeral(s, i, "The transcript was empty.")
		return
	}

	res, err := dc.analyze(transcript)
	if err != nil {
		discord.RespondError(s, i, err)
		return
	}
	discord.RespondEmbed(s, i, resultEmbed("Connection Depth", res))
}

// handleFile downloads and analyzes a transcript file attachment.
func (dc *DepthCommands) handleFile(s discord.Responder, i *discordgo.InteractionCreate) {
	if !dc.perms.Allowed(i) {
		discord.RespondEphemeral(s, i, "You need the analyst role to run depth analysis.")
		return
	}

	attachment := FirstAttachment(i)
	if attachment == nil {
		discord.RespondEphemeral(s, i, "Please attach a transcript file.")
		return
	}

	if attachment.Size > maxTranscriptSize {
		discord.RespondEphemeral(s, i, fmt.Sprintf("File too large (%d bytes). Maximum is 1 MB.", attachment.Size))
		return
	}

	if DetectFormat(attachment.Filename) == FormatUnknown {
		discord.RespondEphemeral(s, i, "Unsupported file type. Use .txt, .md, or .log.")
		return
	}

	// Defer since the download may take a moment.
	discord.DeferReply(s, i)

	ctx, cancel := context.WithTimeout(context.Background(), downloadTimeout)
	defer cancel()

	dl, err := DownloadAttachment(ctx, attachment)
	if err != nil {
		discord.FollowUp(s, i, fmt.Sprintf("Failed to download attachment: %v", err))
		return
	}
	defer dl.Body.Close()

	raw, err := io.ReadAll(dl.Body)
	if err != nil {
		discord.FollowUp(s, i, fmt.Sprintf("Failed to read attachment: %v", err))
		return
	}
	if len(raw) > maxTranscriptSize {
		discord.FollowUp(s, i, "File too large. Maximum is 1 MB.")
		return
	}

	res, err := dc.analyze(string(raw))
	if err != nil {
		discord.FollowUp(s, i, fmt.Sprintf("Analysis failed: %v", err))
		return
	}
	discord.FollowUpEmbed(s, i, resultEmbed(attachment.Filename, res))
}

// handleDemo responds with a side-by-side comparison of the two built-in
// example transcripts.
func (dc *DepthCommands) handleDemo(s discord.Responder, i *discordgo.InteractionCreate) {
	if !dc.perms.Allowed(i) {
		discord.RespondEphemeral(s, i, "You need the analyst role to run depth analysis.")
		return
	}

	a := dc.analyzer.Load()
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	low, err := a.Analyze(ctx, demo.Low)
	if err != nil {
		discord.RespondError(s, i, err)
		return
	}
	high, err := a.Analyze(ctx, demo.High)
	if err != nil {
		discord.RespondError(s, i, err)
		return
	}

	lowRes, highRes := report.FromAnalysis(low), report.FromAnalysis(high)
	embed := &discordgo.MessageEmbed{
		Title:       "Demo: Transactional vs. Connected",
		Description: "The same five dimensions applied to two example conversations.",
		Color:       labelColor(highRes.Overall.Label),
		Fields: []*discordgo.MessageEmbedField{
			demoField("Transactional", lowRes),
			demoField("Connected", highRes),
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "rapport"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	discord.RespondEmbed(s, i, embed)
}

// analyze runs one transcript through the current analyzer, records metrics
// and returns the wire-shaped result.
func (dc *DepthCommands) analyze(transcript string) (report.Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	start := time.Now()
	analysis, err := dc.analyzer.Load().Analyze(ctx, transcript)
	if err != nil {
		return report.Result{}, fmt.Errorf("analyze transcript: %w", err)
	}
	dc.metrics.RecordAnalysis(ctx, "discord", analysis, time.Since(start))
	return report.FromAnalysis(analysis), nil
}

// resultEmbed builds the full score breakdown embed for one analysis.
func resultEmbed(title string, res report.Result) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{
			Name:  "Overall",
			Value: fmt.Sprintf("**%d/100** · %s", res.Overall.Value, res.Overall.Label),
		},
	}
	for _, dim := range res.Dimensions {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   dim.Title,
			Value:  fmt.Sprintf("%d/100 · %s", dim.Value, dim.Label),
			Inline: true,
		})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name: "Stats",
		Value: fmt.Sprintf("%d turns (%d human / %d AI) · %d human words / %d AI words",
			res.Stats.Turns, res.Stats.HumanTurns, res.Stats.AITurns,
			res.Stats.HumanWords, res.Stats.AIWords),
	})

	if res.Insights != nil {
		if f := momentsField("Highlights", res.Insights.Highlights); f != nil {
			fields = append(fields, f)
		}
		if f := momentsField("Missed opportunities", res.Insights.MissedOpportunities); f != nil {
			fields = append(fields, f)
		}
		if f := momentsField("AI experience moments", res.Insights.AIExperienceMoments); f != nil {
			fields = append(fields, f)
		}
	}

	return &discordgo.MessageEmbed{
		Title:     title,
		Color:     labelColor(res.Overall.Label),
		Fields:    fields,
		Footer:    &discordgo.MessageEmbedFooter{Text: "rapport"},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// demoField summarises one demo analysis as a single embed field.
func demoField(name string, res report.Result) *discordgo.MessageEmbedField {
	var b strings.Builder
	fmt.Fprintf(&b, "**Overall: %d/100** · %s\n", res.Overall.Value, res.Overall.Label)
	for _, dim := range res.Dimensions {
		fmt.Fprintf(&b, "%s: %d\n", dim.Title, dim.Value)
	}
	return &discordgo.MessageEmbedField{Name: name, Value: b.String()}
}

// momentsField renders a moment list as one embed field, or nil when empty.
// Turn indices are shown one-based for readability.
func momentsField(name string, moments []report.Moment) *discordgo.MessageEmbedField {
	if len(moments) == 0 {
		return nil
	}
	var b strings.Builder
	for _, m := range moments {
		excerpt := m.Excerpt
		if len(excerpt) > 80 {
			excerpt = excerpt[:77] + "..."
		}
		fmt.Fprintf(&b, "Turn %d · %s: %q\n", m.Turn+1, m.Note, excerpt)
	}
	return &discordgo.MessageEmbedField{Name: name, Value: b.String()}
}

// labelColor maps a label to its embed accent color.
func labelColor(label string) int {
	switch label {
	case string(depth.LabelGreen):
		return embedColorGreen
	case string(depth.LabelYellow):
		return embedColorYellow
	default:
		return embedColorRed
	}
}

// subcommandOptions extracts the options from the first subcommand in an
// interaction's application command data. Returns nil if no subcommand exists.
func subcommandOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	data := i.ApplicationCommandData()
	if len(data.Options) > 0 && data.Options[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		return data.Options[0].Options
	}
	return nil
}
