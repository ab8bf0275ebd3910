package service

import (
	"time"

	"aitutor_backend/internal/config"
	"aitutor_backend/internal/repository"
	"aitutor_backend/internal/scoring"
	"aitutor_backend/internal/util"

	"go.uber.org/zap"
)

// AdaptiveService 难度与测评节奏诊断。
// Pipeline 热加载后新阈值对后续请求直接生效
type AdaptiveService struct {
	ObservationRepo *repository.ObservationRepository
	Pipeline        *config.PipelineParams
	Logger          *zap.Logger
}

func NewAdaptiveService(
	observationRepo *repository.ObservationRepository,
	pipeline *config.PipelineParams,
	logger *zap.Logger,
) *AdaptiveService {
	return &AdaptiveService{
		ObservationRepo: observationRepo,
		Pipeline:        pipeline,
		Logger:          logger,
	}
}

type SubjectDiagnosis struct {
	Subject     string                       `json:"subject"`
	SampleSize  int                          `json:"sampleSize"`
	Trend       scoring.TrendResult          `json:"trend"`
	Consistency scoring.ConsistencyResult    `json:"consistency"`
	Adjustment  scoring.DifficultyAdjustment `json:"adjustment"`
}

type NextAssessmentAdvice struct {
	Subject            string    `json:"subject"`
	RecommendedAt      time.Time `json:"recommendedAt"`
	IntervalHours      float64   `json:"intervalHours"`
	SuccessProbability float64   `json:"successProbability"`
	Rationale          string    `json:"rationale"`
}

// pipeline 每次调用取一份完整快照
func (s *AdaptiveService) pipeline() config.PipelineConfig {
	if s.Pipeline == nil {
		return config.PipelineConfig{}
	}
	return s.Pipeline.Load()
}

func (s *AdaptiveService) weights() scoring.Weights {
	p := s.pipeline()
	w := scoring.Weights{
		Accuracy:    p.AccuracyWeight,
		Trend:       p.TrendWeight,
		Consistency: p.ConsistencyWeight,
	}
	if w.Accuracy <= 0 && w.Trend <= 0 && w.Consistency <= 0 {
		return scoring.DefaultWeights()
	}
	return w
}

// DiagnoseSubject 取某科目最近窗口内的观测，输出趋势、稳定度与难度建议
func (s *AdaptiveService) DiagnoseSubject(userID uint, subject string, currentLevel scoring.Level) (*SubjectDiagnosis, error) {
	p := s.pipeline()
	obs, err := s.ObservationRepo.FindRecentBySubject(userID, subject, p.ObservationWindow)
	if err != nil {
		return nil, err
	}

	series := make([]float64, len(obs))
	for i, o := range obs {
		series[i] = o.Value
	}

	analyzer := scoring.NewAnalyzer(p.TrendSlopeThreshold)
	trend := analyzer.AnalyzeTrend(series)
	consistency := analyzer.AnalyzeConsistency(series)
	mean := scoring.Mean(series)

	adjustment := scoring.RecommendDifficulty(subject, currentLevel, mean, trend, consistency, s.weights())

	return &SubjectDiagnosis{
		Subject:     subject,
		SampleSize:  len(series),
		Trend:       trend,
		Consistency: consistency,
		Adjustment:  adjustment,
	}, nil
}

// DiagnoseAll 对学生有观测记录的所有科目做难度诊断
func (s *AdaptiveService) DiagnoseAll(userID uint, currentLevel scoring.Level) ([]SubjectDiagnosis, error) {
	subjects, err := s.ObservationRepo.ListSubjects(userID)
	if err != nil {
		return nil, err
	}

	diagnoses := make([]SubjectDiagnosis, 0, len(subjects))
	for _, subject := range subjects {
		d, err := s.DiagnoseSubject(userID, subject, currentLevel)
		if err != nil {
			s.Logger.Error("Subject diagnosis failed",
				zap.Uint("userId", userID),
				zap.String("subject", subject),
				zap.Error(err))
			continue
		}
		diagnoses = append(diagnoses, *d)
	}
	return diagnoses, nil
}

// NextAssessment 结合趋势和近期表现给出下次测评时间与预估通过率
func (s *AdaptiveService) NextAssessment(userID uint, subject string) (*NextAssessmentAdvice, error) {
	p := s.pipeline()
	obs, err := s.ObservationRepo.FindRecentBySubject(userID, subject, p.ObservationWindow)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, util.ErrNoResponses
	}

	series := make([]float64, len(obs))
	for i, o := range obs {
		series[i] = o.Value
	}

	analyzer := scoring.NewAnalyzer(p.TrendSlopeThreshold)
	trend := analyzer.AnalyzeTrend(series)
	consistency := analyzer.AnalyzeConsistency(series)
	mean := scoring.Mean(series)
	adjustment := scoring.RecommendDifficulty(subject, scoring.LevelIntermediate, mean, trend, consistency, s.weights())

	hours, rationale := assessmentInterval(trend.Direction, mean)

	return &NextAssessmentAdvice{
		Subject:            subject,
		RecommendedAt:      time.Now().Add(time.Duration(hours * float64(time.Hour))),
		IntervalHours:      hours,
		SuccessProbability: successProbability(trend, consistency, adjustment),
		Rationale:          rationale,
	}, nil
}

// assessmentInterval 基准24小时：上升趋势拉长到18，下降压缩到12，
// 再按近期均值修正，最终收拢到 [4,72]
func assessmentInterval(direction scoring.TrendDirection, mean float64) (float64, string) {
	hours := 24.0
	rationale := "Standard review interval based on steady performance"

	switch direction {
	case scoring.TrendImproving:
		hours = 18.0
		rationale = "Performance is improving, shortening the interval to reinforce progress"
	case scoring.TrendDeclining:
		hours = 12.0
		rationale = "Performance is declining, scheduling an earlier check-in"
	}

	if mean < 0.4 {
		hours = 8.0
		rationale = "Low recent scores call for a prompt follow-up assessment"
	} else if mean > 0.8 {
		hours = 48.0
		rationale = "Strong recent scores allow a longer gap before the next assessment"
	}

	if hours < 4 {
		hours = 4
	}
	if hours > 72 {
		hours = 72
	}
	return hours, rationale
}

// successProbability 基线0.7，按趋势、稳定度和难度调整方向修正，收拢到 [0.1,0.95]
func successProbability(trend scoring.TrendResult, consistency scoring.ConsistencyResult, adjustment scoring.DifficultyAdjustment) float64 {
	p := 0.7

	switch trend.Direction {
	case scoring.TrendImproving:
		p += 0.15
	case scoring.TrendDeclining:
		p -= 0.15
	}

	p += (consistency.ConsistencyScore - 0.5) * 0.2

	// 降难度提升通过率，升难度略微压低
	if rank(adjustment.RecommendedLevel) < rank(adjustment.CurrentLevel) {
		p += 0.1 * adjustment.Confidence
	} else if rank(adjustment.RecommendedLevel) > rank(adjustment.CurrentLevel) {
		p -= 0.05 * adjustment.Confidence
	}

	if p < 0.1 {
		return 0.1
	}
	if p > 0.95 {
		return 0.95
	}
	return p
}

func rank(level scoring.Level) int {
	switch level {
	case scoring.LevelBeginner:
		return 0
	case scoring.LevelIntermediate:
		return 1
	case scoring.LevelAdvanced:
		return 2
	}
	return 0
}
