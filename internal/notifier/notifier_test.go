package notifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-paytrack/internal/settlement"
)

func TestSendSettlement_NotConfigured(t *testing.T) {
	n, err := NewEmailNotifier(SMTPConfig{})
	assert.NoError(t, err)

	err = n.SendSettlement("payroll@example.com", settlement.SettlementResponse{Year: 2024})
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestNewEmailNotifier_ParsesTemplates(t *testing.T) {
	n, err := NewEmailNotifier(SMTPConfig{Host: "smtp.example.com", Port: 587})
	assert.NoError(t, err)
	assert.NotNil(t, n)
}
