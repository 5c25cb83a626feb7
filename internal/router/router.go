// Package router dispatches parsed user intents to the catalog lookups, the
// eligibility filter and the recommendation scorer, and falls back to the
// generative service for anything it does not recognize.
package router

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/college-advisor/internal/catalog"
	"github.com/jonathan/college-advisor/internal/eligibility"
	"github.com/jonathan/college-advisor/internal/intent"
	"github.com/jonathan/college-advisor/internal/llm"
	"github.com/jonathan/college-advisor/internal/match"
	"github.com/jonathan/college-advisor/internal/observability"
	"github.com/jonathan/college-advisor/internal/prompts"
	"github.com/jonathan/college-advisor/internal/recommend"
	"github.com/jonathan/college-advisor/internal/types"
)

// fallbackMaxTokens bounds generative fallback answers.
const fallbackMaxTokens = 200

// Session carries the per-conversation state between turns: the eligible
// set from the most recent score/exam query (nil until one succeeds) and the
// bounded conversation history used as fallback prompt context. Turns on one
// session are serialized by the session's own mutex, so concurrent Handle
// calls (e.g. parallel HTTP requests with the same session id) never race on
// Eligible or History. Nothing is persisted across process restarts.
type Session struct {
	ID       uuid.UUID
	Eligible *types.EligibleSet
	History  *types.History

	mu sync.Mutex
}

// NewSession creates an empty session in the idle state.
func NewSession() *Session {
	return &Session{
		ID:      uuid.New(),
		History: types.NewHistory(types.DefaultHistoryLimit),
	}
}

// Router answers one user line at a time. The catalog is read-only; all
// mutable state lives in the Session passed to Handle, so independent
// conversations never share state.
type Router struct {
	cat          *catalog.Catalog
	resolver     *match.Resolver
	client       llm.Client
	explain      *recommend.Explainer
	log          *zap.Logger
	printer      *observability.Printer
	historyLimit int
}

// New creates a router over the given catalog and generative client.
func New(cat *catalog.Catalog, client llm.Client, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		cat:          cat,
		resolver:     match.NewResolver(cat.Names(), match.DefaultThreshold),
		client:       client,
		explain:      recommend.NewExplainer(client),
		log:          log,
		historyLimit: types.DefaultHistoryLimit,
	}
}

// WithMatchThreshold replaces the fuzzy name match acceptance threshold.
func (r *Router) WithMatchThreshold(threshold int) *Router {
	r.resolver = match.NewResolver(r.cat.Names(), threshold)
	return r
}

// WithHistoryLimit replaces the number of conversation turns sessions retain.
func (r *Router) WithHistoryLimit(limit int) *Router {
	if limit > 0 {
		r.historyLimit = limit
	}
	return r
}

// NewSession creates an empty session with the router's history limit.
func (r *Router) NewSession() *Session {
	return &Session{
		ID:      uuid.New(),
		History: types.NewHistory(r.historyLimit),
	}
}

// WithPrinter enables verbose boxed output of intermediate results (matched
// records, eligible sets, score breakdowns) alongside the responses.
func (r *Router) WithPrinter(p *observability.Printer) *Router {
	r.printer = p
	return r
}

// Welcome returns the session-opening banner listing the supported exams.
func (r *Router) Welcome() string {
	return fmt.Sprintf(
		"Welcome to the Rajasthan Engineering College Chatbot!\n"+
			"You can ask about college eligibility based on these exams: %s.\n"+
			"You can also ask about college fees, placements, and general information.\n"+
			"Type 'quit' to exit.",
		strings.Join(r.cat.Exams(), ", "))
}

// Handle processes one line of user input within a session and returns the
// response text. A turn runs to completion; per-turn failures are reported
// as sentences and never terminate the conversation. Turns on the same
// session run one at a time.
func (r *Router) Handle(ctx context.Context, sess *Session, input string) string {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.History.Add(types.SpeakerUser, input)

	tag, params := intent.Parse(input, r.cat.Exams())
	r.log.Debug("parsed turn",
		zap.String("session", sess.ID.String()),
		zap.String("intent", string(tag)),
		zap.Bool("has_score", params.HasScore),
		zap.String("college", params.College),
		zap.String("exam", params.Exam))

	var response string
	switch tag {
	case intent.Greeting:
		response = "Hello! How can I assist you with information about engineering colleges in Rajasthan?"
	case intent.Eligibility:
		response = r.handleEligibility(sess, params)
	case intent.BestCollege:
		response = r.handleBestCollege(ctx, sess)
	case intent.Cutoff:
		response = r.handleCutoff(params)
	case intent.Fees:
		response = r.handleFees(params)
	case intent.Salary:
		response = r.handleSalary(params)
	case intent.Information:
		response = r.handleInformation(params)
	default:
		response = r.handleGeneral(ctx, sess, input)
	}

	sess.History.Add(types.SpeakerBot, response)
	return response
}

// handleEligibility runs the score/exam query and overwrites the session's
// eligible set on success. An unsupported exam leaves the session state
// untouched.
func (r *Router) handleEligibility(sess *Session, params intent.Params) string {
	if !params.HasScore {
		return "Please provide a valid rank or score."
	}
	if params.Exam == "" {
		return fmt.Sprintf("Please specify a valid exam (e.g., %s).", strings.Join(r.cat.Exams(), ", "))
	}

	set, err := eligibility.Filter(r.cat, params.Score, params.Exam)
	if err != nil {
		var unsupported *eligibility.UnsupportedExamError
		if errors.As(err, &unsupported) {
			return fmt.Sprintf("I'm sorry, but I don't have specific information about how to interpret scores for the %s exam.", unsupported.Exam)
		}
		r.log.Error("eligibility query failed", zap.Error(err))
		return "Something went wrong while looking up eligible colleges."
	}

	sess.Eligible = set
	if r.printer != nil {
		r.printer.PrintEligibleSet(set)
	}
	if set.Empty() {
		return fmt.Sprintf("I'm sorry, but with the given %s score/rank of %d, you may not be eligible for any of the colleges in our database. Consider exploring other options or improving your score.", set.Exam, set.Score)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on your %s score/rank of %d, you may be eligible for the following colleges:\n\n", set.Exam, set.Score)
	shown := set.Colleges
	if len(shown) > eligibility.DisplayLimit {
		shown = shown[:eligibility.DisplayLimit]
	}
	for _, college := range shown {
		fmt.Fprintf(&sb, "%s — %s (rating %s)\n", college.Name, college.Location, formatNumber(college.Rating))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// handleBestCollege scores the stored eligible set. The explanation is an
// enrichment: if the generative call fails, the winner is still reported.
func (r *Router) handleBestCollege(ctx context.Context, sess *Session) string {
	if sess.Eligible == nil {
		return "Please specify a score and exam first to find eligible colleges."
	}

	rec, err := recommend.SelectBest(sess.Eligible)
	if err != nil {
		if errors.Is(err, recommend.ErrNoEligibleSet) {
			return "There are no eligible colleges available. Please ask for eligible colleges first."
		}
		r.log.Error("recommendation failed", zap.Error(err))
		return "Something went wrong while ranking the eligible colleges."
	}

	if r.printer != nil {
		r.printer.PrintRecommendation(rec)
	}

	base := fmt.Sprintf("The best college is %s in %s.", rec.Best.College.Name, rec.Best.College.Location)

	explanation, err := r.explain.Explain(ctx, rec.Best)
	if err != nil {
		r.log.Warn("explanation unavailable", zap.Error(err))
		return base + " An AI explanation could not be generated right now."
	}
	return base + "\n\nAI Explanation: " + explanation
}

func (r *Router) handleCutoff(params intent.Params) string {
	if params.College == "" {
		return "I'm sorry, I couldn't find the college name in your request."
	}
	college, ok := r.lookup(params.College)
	if !ok {
		return fmt.Sprintf("College '%s' not found.", params.College)
	}

	cutoff, ok := college.CutoffFor(params.Year)
	if !ok {
		return fmt.Sprintf("Cutoff information for the year %s is not available.", params.Year)
	}
	return fmt.Sprintf("The cutoff for %s in %s is %s.", college.Name, params.Year, formatNumber(cutoff))
}

func (r *Router) handleFees(params intent.Params) string {
	if params.College == "" {
		return "Please provide a college name for fee information."
	}
	college, ok := r.lookup(params.College)
	if !ok {
		return fmt.Sprintf("College '%s' not found.", params.College)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Annual fees for %s:\n", college.Name)
	for _, course := range college.Courses {
		fmt.Fprintf(&sb, "%s: ₹%s per year\n", course.Name, formatNumber(course.AnnualFee))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (r *Router) handleSalary(params intent.Params) string {
	if params.College == "" {
		return "Please provide a college name for placement package information."
	}
	college, ok := r.lookup(params.College)
	if !ok {
		return fmt.Sprintf("College '%s' not found.", params.College)
	}
	return fmt.Sprintf("The average package for %s is ₹%s per annum.", college.Name, formatNumber(college.Placements.AveragePackage))
}

func (r *Router) handleInformation(params intent.Params) string {
	if params.College == "" {
		return "Please provide a college name."
	}
	college, ok := r.lookup(params.College)
	if !ok {
		return fmt.Sprintf("College '%s' not found.", params.College)
	}
	if r.printer != nil {
		r.printer.PrintCollege(&college)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "College: %s\n", college.Name)
	fmt.Fprintf(&sb, "Location: %s\n", college.Location)
	fmt.Fprintf(&sb, "Type: %s\n", college.Type)
	fmt.Fprintf(&sb, "Rating: %s\n", formatNumber(college.Rating))
	fmt.Fprintf(&sb, "Admission Exam: %s\n", college.Admission.Exam)
	fmt.Fprintf(&sb, "Average Package: ₹%s\n", formatNumber(college.Placements.AveragePackage))
	fmt.Fprintf(&sb, "Highest Package: ₹%s\n", formatNumber(college.Placements.HighestPackage))
	fmt.Fprintf(&sb, "Top Recruiters: %s\n", strings.Join(college.Placements.TopRecruiters, ", "))
	fmt.Fprintf(&sb, "Facilities: %s", strings.Join(college.Facilities, ", "))
	return sb.String()
}

// handleGeneral answers open-ended questions with the generative service.
// The first question of a conversation gets the domain-primed prompt; later
// ones get the conversation history as context.
func (r *Router) handleGeneral(ctx context.Context, sess *Session, input string) string {
	var prompt string
	if sess.History.Len() <= 1 {
		template, err := prompts.Get("advisor.json", "general_question")
		if err != nil {
			r.log.Error("prompt unavailable", zap.Error(err))
			return degradedGeneralAnswer()
		}
		prompt = prompts.Format(template, map[string]string{"Question": input})
	} else {
		template, err := prompts.Get("advisor.json", "fallback")
		if err != nil {
			r.log.Error("prompt unavailable", zap.Error(err))
			return degradedGeneralAnswer()
		}
		prompt = prompts.Format(template, map[string]string{"History": renderHistory(sess.History)})
	}

	answer, err := r.client.Generate(ctx, prompt, llm.Options{
		Tier:        llm.TierStandard,
		MaxTokens:   fallbackMaxTokens,
		Temperature: llm.DefaultTemperature,
	})
	if err != nil {
		r.log.Warn("generative fallback failed", zap.Error(err))
		return degradedGeneralAnswer()
	}
	return answer
}

func degradedGeneralAnswer() string {
	return "I'm sorry, I couldn't reach the AI service to answer that. Please try again later."
}

// lookup resolves a fragment and fetches the record it names.
func (r *Router) lookup(fragment string) (types.CollegeRecord, bool) {
	name, ok := r.resolver.Resolve(fragment)
	if !ok {
		return types.CollegeRecord{}, false
	}
	return r.cat.ByName(name)
}

// renderHistory formats the bounded history the way the fallback prompt
// expects: one "Speaker: text" line per turn.
func renderHistory(h *types.History) string {
	var sb strings.Builder
	for i, turn := range h.Turns() {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s: %s", turn.Speaker, turn.Text)
	}
	return sb.String()
}

// formatNumber renders a numeric field without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
