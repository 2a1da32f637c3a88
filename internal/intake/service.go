package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"health-intake/internal/advisory"
	"health-intake/internal/platform/metrics"
)

const (
	// History windows sent as LLM context.
	chatHistoryWindow   = 10
	reportHistoryWindow = 20
)

// LLMClient defines the model interactions the service needs. We declare it
// here to decouple from the specific provider implementation.
type LLMClient interface {
	Chat(ctx context.Context, systemPrompt string, history []Message, contextMsg, userMsg string) (string, error)
	ReportAnalysis(ctx context.Context, systemPrompt, analysisPrompt string) (string, error)
}

// ReportRenderer lays out the record and narrative analysis as PDF bytes.
type ReportRenderer interface {
	Build(profile Profile, rec PatientRecord, analysis string) ([]byte, error)
}

type Service struct {
	profile  Profile
	llm      LLMClient
	renderer ReportRenderer
	log      *zap.Logger
	metrics  *metrics.Collector
}

func NewService(profile Profile, llm LLMClient, renderer ReportRenderer, log *zap.Logger, m *metrics.Collector) *Service {
	return &Service{
		profile:  profile,
		llm:      llm,
		renderer: renderer,
		log:      log,
		metrics:  m,
	}
}

// Profile returns the clinic profile the service was built with.
func (s *Service) Profile() Profile { return s.profile }

// ProcessTurn handles one conversational turn: it asks the model for a
// reply, merges extracted fields into the record, and recomputes
// progress/stage. The update is all-or-nothing: if the model call fails the
// record and stage are left untouched for this turn and an error is
// returned.
func (s *Service) ProcessTurn(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	stage := req.CurrentStage

	contextMsg, err := stageContext(req.PatientData, stage)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("encoding patient data: %w", err)
	}

	history := tail(req.MessageHistory, chatHistoryWindow)
	reply, err := s.llm.Chat(ctx, s.profile.SystemPrompt, history, contextMsg, req.Message)
	if err != nil {
		s.metrics.LLMFailures.Inc()
		return ChatResponse{}, fmt.Errorf("chat completion: %w", err)
	}

	updated, applied := ExtractFields(req.Message, req.PatientData, stage)
	progress, next := CalculateProgress(updated, stage)

	if next != stage {
		s.log.Info("stage advanced",
			zap.String("from", string(stage)),
			zap.String("to", string(next)),
			zap.Int("progress", progress))
	} else if !applied {
		s.log.Debug("no fields extracted", zap.String("stage", string(stage)))
	}
	s.metrics.TurnsTotal.WithLabelValues(string(stage)).Inc()

	return ChatResponse{
		Message:            reply,
		UpdatedPatientData: updated,
		Progress:           progress,
		CurrentStage:       next,
	}, nil
}

// GenerateReport runs the advisory lookups, asks the model for the narrative
// analysis, and renders the PDF. It returns the PDF bytes and the download
// filename.
func (s *Service) GenerateReport(ctx context.Context, req ReportRequest) ([]byte, string, error) {
	insights := advisory.AnalyzeSymptoms(req.PatientData.Symptoms)
	specialistRecs := advisory.SpecialistRecommendations(insights)
	lifestyleRecs := advisory.LifestyleRecommendations(
		req.PatientData.Lifestyle.StressLevel,
		req.PatientData.Lifestyle.SleepQuality,
		req.PatientData.Symptoms,
	)
	drugWarnings := advisory.DrugInteractionWarnings(req.PatientData.CurrentMedications)

	prompt, err := analysisPrompt(req, insights, specialistRecs, lifestyleRecs, drugWarnings)
	if err != nil {
		return nil, "", fmt.Errorf("building analysis prompt: %w", err)
	}

	analysis, err := s.llm.ReportAnalysis(ctx, s.profile.ReportPrompt, prompt)
	if err != nil {
		s.metrics.LLMFailures.Inc()
		return nil, "", fmt.Errorf("report analysis: %w", err)
	}

	pdf, err := s.renderer.Build(s.profile, req.PatientData, analysis)
	if err != nil {
		return nil, "", fmt.Errorf("rendering report: %w", err)
	}

	s.metrics.ReportsGenerated.Inc()
	s.log.Info("report generated",
		zap.String("profile", s.profile.Name),
		zap.Int("symptoms", len(req.PatientData.Symptoms)),
		zap.Int("insights", len(insights)),
		zap.Int("pdf_bytes", len(pdf)))

	return pdf, s.profile.ReportFile, nil
}

// stageContext builds the system message that carries the serialized record
// and stage alongside the conversation.
func stageContext(rec PatientRecord, stage Stage) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Current patient data: %s\nCurrent stage: %s\nPlease continue the assessment, asking appropriate follow-up questions for the current stage or transitioning to the next stage if this one is complete.", data, stage), nil
}

func analysisPrompt(req ReportRequest, insights []advisory.Insight, specialistRecs []advisory.Specialist, lifestyleRecs, drugWarnings []string) (string, error) {
	patientJSON, err := json.MarshalIndent(req.PatientData, "", "  ")
	if err != nil {
		return "", err
	}
	insightsJSON, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		return "", err
	}
	specialistsJSON, err := json.MarshalIndent(specialistRecs, "", "  ")
	if err != nil {
		return "", err
	}
	lifestyleJSON, err := json.MarshalIndent(lifestyleRecs, "", "  ")
	if err != nil {
		return "", err
	}
	warningsJSON, err := json.MarshalIndent(drugWarnings, "", "  ")
	if err != nil {
		return "", err
	}

	var conv strings.Builder
	for _, msg := range tail(req.MessageHistory, reportHistoryWindow) {
		fmt.Fprintf(&conv, "%s: %s\n", msg.Type, msg.Content)
	}

	return fmt.Sprintf(`Generate a comprehensive functional medicine health screening report based on this patient data:

Patient Data: %s

Medical Insights: %s

Specialist Recommendations: %s

Lifestyle Recommendations: %s

Drug Interaction Warnings: %s

Conversation Summary: %s

Please provide a detailed functional medicine analysis incorporating the medical insights and recommendations provided.`,
		patientJSON, insightsJSON, specialistsJSON, lifestyleJSON, warningsJSON, conv.String()), nil
}

func tail(msgs []Message, n int) []Message {
	if len(msgs) <= n {
		return msgs
	}
	return msgs[len(msgs)-n:]
}
