package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSession_Idle(t *testing.T) {
	s := NewSession()
	require.Equal(t, SessionIdle, s.State)
	require.False(t, s.HasCapture())
}

func TestSessionClone_CopiesCapture(t *testing.T) {
	s := NewSession()
	s.Captured = []byte{1, 2, 3}

	c := s.Clone()
	c.Captured[0] = 9

	require.Equal(t, byte(1), s.Captured[0])
	require.True(t, c.HasCapture())
}
