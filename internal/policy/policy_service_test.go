package policy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	stored *PayrollSettings
}

func (f *fakeRepo) Get(ctx context.Context) (PayrollSettings, error) {
	if f.stored == nil {
		return defaultSettings(), nil
	}
	return *f.stored, nil
}

func (f *fakeRepo) Upsert(ctx context.Context, s *PayrollSettings) error {
	copied := *s
	f.stored = &copied
	return nil
}

func TestService_Get_DefaultsWhenUnset(t *testing.T) {
	svc := NewService(&fakeRepo{})

	resp, err := svc.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 40, resp.WorkingDayHoursPerWeek)
	assert.Equal(t, 1.25, resp.RegularOTRatePercent)
	assert.Equal(t, 1.5, resp.WeekendOTRate)
}

func TestService_UpdateThenCurrent(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Update(ctx, uuid.New().String(), UpdateSettingsRequest{
		WorkingDayHoursPerWeek: 44,
		RegularOTRatePercent:   1.3,
		WeekendOTRate:          1.6,
	})
	assert.NoError(t, err)

	settings, err := svc.Current(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 44, settings.WorkingDayHoursPerWeek)
	assert.Equal(t, 1.3, settings.RegularOTRatePercent)
}

func TestService_Update_InvalidActor(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Update(context.Background(), "not-a-uuid", UpdateSettingsRequest{
		WorkingDayHoursPerWeek: 40,
		RegularOTRatePercent:   1.25,
		WeekendOTRate:          1.5,
	})
	assert.Error(t, err)
}
