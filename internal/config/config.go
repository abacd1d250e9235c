package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultListenAddr = ":8080"
const defaultSessionTimeoutSeconds = 300
const defaultTimerTickInterval = time.Second
const defaultLoanPostingDelay = 2500 * time.Millisecond
const defaultJWTSecret = "bankist_demo_secret"

type Config struct {
	ListenAddr            string
	SessionTimeoutSeconds int
	TimerTickInterval     time.Duration
	LoanPostingDelay      time.Duration
	JWTSecret             string
}

func Load() (Config, error) {
	addr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if addr == "" {
		addr = defaultListenAddr
	}

	timeoutSeconds := defaultSessionTimeoutSeconds
	if raw := strings.TrimSpace(os.Getenv("SESSION_TIMEOUT_SECONDS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("SESSION_TIMEOUT_SECONDS must be a positive integer, got %q", raw)
		}
		timeoutSeconds = parsed
	}

	tickInterval := defaultTimerTickInterval
	if raw := strings.TrimSpace(os.Getenv("TIMER_TICK_INTERVAL_MS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("TIMER_TICK_INTERVAL_MS must be a positive integer, got %q", raw)
		}
		tickInterval = time.Duration(parsed) * time.Millisecond
	}

	loanDelay := defaultLoanPostingDelay
	if raw := strings.TrimSpace(os.Getenv("LOAN_POSTING_DELAY_MS")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return Config{}, fmt.Errorf("LOAN_POSTING_DELAY_MS must be a non-negative integer, got %q", raw)
		}
		loanDelay = time.Duration(parsed) * time.Millisecond
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = defaultJWTSecret
	}

	return Config{
		ListenAddr:            addr,
		SessionTimeoutSeconds: timeoutSeconds,
		TimerTickInterval:     tickInterval,
		LoanPostingDelay:      loanDelay,
		JWTSecret:             secret,
	}, nil
}
