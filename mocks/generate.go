package mocks

//go:generate mockgen -destination=./mock_fetcher.go -package=mocks RoboAdvisor/internal/collector Fetcher
//go:generate mockgen -destination=./mock_notifier.go -package=mocks RoboAdvisor/internal/notifier Notifier
