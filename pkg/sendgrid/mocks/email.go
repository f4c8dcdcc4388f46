package mocks

import (
	"context"

	"github.com/savedate/save-date/internal/models"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
