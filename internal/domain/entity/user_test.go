package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultState(t *testing.T) {
	u := NewUser(1, 10)
	require.Equal(t, StateMainMenu, u.State)
	require.Equal(t, int64(1), u.ID)
	require.Equal(t, int64(10), u.ChatID)
	require.Nil(t, u.LastAssessment)
}

func TestUserRecordAssessment(t *testing.T) {
	u := NewUser(1, 10)
	a := &Assessment{Metrics: FrameMetrics{Focus: 150, Brightness: 120}}

	u.RecordAssessment(a, false)
	require.Same(t, a, u.LastAssessment)
	require.Zero(t, u.Uploads)

	u.RecordAssessment(a, true)
	require.Equal(t, 1, u.Uploads)
}
