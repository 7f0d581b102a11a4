package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed       = errors.New("validation failed")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrInvalidSampleSize      = errors.New("sample teams and team size must be positive")

	// Ошибки конфликтов
	ErrCompetitorConflict = errors.New("competitor name already used in this tournament")

	// Ошибки аутентификации
	ErrInvalidCredentials = errors.New("invalid password")

	ErrTournamentNotFound = errors.New("tournament not found")

	// Экспорт в R2 не настроен
	ErrExportDisabled = errors.New("snapshot export is not configured")
)
