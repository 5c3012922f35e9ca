package service

import (
	"context"
	"fmt"
	"strings"

	"bistdesk/internal/domain"
	"bistdesk/internal/repository"
	"bistdesk/internal/util"

	"go.uber.org/zap"
)

// AdvisorService turns an analysis report into three fixed-rule expert
// opinions, optionally topped with language-model commentary when a
// GPT key is configured.
type AdvisorService interface {
	Advise(ctx context.Context, report *domain.AnalysisReport) (*domain.AdvisorOpinions, error)
}

type advisorServiceHandler struct {
	AnalysisService AnalysisService
	GptRepository   repository.GptRepository // nil when no key is configured
	Logger          *zap.SugaredLogger
}

func NewAdvisorService(
	analysisService AnalysisService,
	gptRepository repository.GptRepository,
	logger *zap.SugaredLogger,
) AdvisorService {
	return advisorServiceHandler{
		AnalysisService: analysisService,
		GptRepository:   gptRepository,
		Logger:          logger,
	}
}

func (h advisorServiceHandler) Advise(ctx context.Context, report *domain.AnalysisReport) (*domain.AdvisorOpinions, error) {
	if report == nil {
		return nil, fmt.Errorf("cannot advise on a nil report")
	}

	opinions := &domain.AdvisorOpinions{
		TechnicalExpert:   technicalOpinion(report.Indicators),
		FundamentalExpert: fundamentalOpinion(report.Fundamentals),
		VolumeExpert:      volumeOpinion(report.Indicators),
	}

	// commentary is best-effort; a gpt failure never fails the advice
	if h.GptRepository != nil {
		commentary, err := h.GptRepository.Commentary(ctx, h.AnalysisService.RenderText(report))
		if err != nil {
			h.Logger.Warnf("advising on %s without commentary: %v", report.Symbol, err)
		} else {
			opinions.Commentary = util.StringPointer(commentary)
		}
	}

	return opinions, nil
}

func technicalOpinion(ind domain.IndicatorSnapshot) string {
	signals := []string{}

	if ind.RSI > 0 && ind.RSI < 30 {
		signals = append(signals, "RSI is in the oversold zone, this could be a buying opportunity")
	} else if ind.RSI > 70 {
		signals = append(signals, "RSI is in the overbought zone, this could be a selling opportunity")
	}

	if ind.MACD > ind.MACDSignal {
		signals = append(signals, "MACD is giving a positive signal")
	} else {
		signals = append(signals, "MACD is giving a negative signal")
	}

	if ind.EMA20 > 0 && ind.LastPrice > ind.EMA20 {
		signals = append(signals, "price is above the 20-day average")
	} else {
		signals = append(signals, "price is below the 20-day average")
	}

	return "technical expert: " + strings.Join(signals, " and ")
}

func fundamentalOpinion(f *domain.Fundamentals) string {
	if f == nil {
		return "fundamental expert: not enough data"
	}

	signals := []string{}
	if pe := f.ForwardPE; pe != nil {
		if *pe < 10 {
			signals = append(signals, "the P/E ratio is low, the stock may be undervalued")
		} else if *pe > 20 {
			signals = append(signals, "the P/E ratio is high, the stock may be expensive")
		}
	}
	if y := f.DividendYield; y != nil && *y*100 > 5 {
		signals = append(signals, "the dividend yield is high")
	}

	if len(signals) == 0 {
		return "fundamental expert: not enough data"
	}
	return "fundamental expert: " + strings.Join(signals, " and ")
}

func volumeOpinion(ind domain.IndicatorSnapshot) string {
	if ind.MeanVolume > 0 {
		switch {
		case ind.Volume > 2*ind.MeanVolume:
			return "volume expert: abnormally high volume, a significant move may be coming"
		case ind.Volume > 1.5*ind.MeanVolume:
			return "volume expert: volume is rising, the trend may be strengthening"
		}
	}
	return "volume expert: volume is at a normal level"
}
