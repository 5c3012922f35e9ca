package cmd

import (
	"fmt"
	"log"

	"bistdesk/api"
	"bistdesk/internal/calculator"
	"bistdesk/internal/db"
	"bistdesk/internal/logger"
	"bistdesk/internal/repository"
	"bistdesk/internal/service"
	"bistdesk/internal/util"
	"bistdesk/pkg/asenax"
)

func CloseDependencies(handler *api.ApiHandler) {
	if err := handler.Db.Close(); err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	settings, err := util.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	l := logger.New()

	dbConn, err := db.Open(settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// gpt commentary is optional and only wired when a key is present
	var gptRepository repository.GptRepository
	if settings.ChatGPTApiKey != "" {
		gptRepository, err = repository.NewGptRepository(settings.ChatGPTApiKey)
		if err != nil {
			return nil, err
		}
	}

	marketDataRepository := repository.NewYahooRepository(settings.ExchangeSuffix)

	ledgerService := service.NewLedgerService(
		repository.NewTransactionRepository(dbConn),
		repository.NewWatchlistRepository(dbConn),
		repository.NewAlarmRepository(dbConn),
	)
	signalService := service.NewSignalService()
	analysisService := service.NewAnalysisService(
		marketDataRepository,
		calculator.NewIndicatorsService(),
		signalService,
		l,
	)

	apiHandler := &api.ApiHandler{
		Db:               dbConn,
		LedgerService:    ledgerService,
		SignalService:    signalService,
		AnalysisService:  analysisService,
		ValuationService: service.NewValuationService(ledgerService, marketDataRepository, l),
		AlarmService:     service.NewAlarmService(ledgerService, signalService, marketDataRepository, l),
		AdvisorService:   service.NewAdvisorService(analysisService, gptRepository, l),
		SymbolsService:   service.NewSymbolsService(asenax.NewClient(settings.SymbolListURL), l),
		Logger:           l,
	}

	return apiHandler, nil
}
