package telegram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	app "focus-cam/internal/application"
	"focus-cam/internal/domain/entity"
)

func TestFormatOutput_NotReady(t *testing.T) {
	out := &app.InspectionOutput{Assessment: &entity.Assessment{
		Metrics:   entity.FrameMetrics{Focus: 12.5, Brightness: 140},
		Readiness: entity.Readiness{BrightnessOK: true},
	}}

	text := FormatOutput(out)
	require.Contains(t, text, "❌ Резкость: 12.5")
	require.Contains(t, text, "✅ Яркость: 140.0")
	require.Contains(t, text, "размыт")
}

func TestFormatOutput_Uploaded(t *testing.T) {
	out := &app.InspectionOutput{
		Assessment: &entity.Assessment{Readiness: entity.Readiness{FocusOK: true, BrightnessOK: true}},
		Upload:     &entity.UploadResult{Success: true, StatusCode: 200},
	}
	require.Contains(t, FormatOutput(out), "отправлен")
}

func TestFormatOutput_UploadProblems(t *testing.T) {
	ready := &entity.Assessment{Readiness: entity.Readiness{FocusOK: true, BrightnessOK: true}}

	rejected := &app.InspectionOutput{Assessment: ready, Upload: &entity.UploadResult{StatusCode: 413}}
	require.Contains(t, FormatOutput(rejected), "413")

	failed := &app.InspectionOutput{Assessment: ready, UploadErr: errors.New("timeout")}
	require.Contains(t, FormatOutput(failed), "не удалось")
}

func TestAdvice(t *testing.T) {
	require.Contains(t, advice(entity.Readiness{}), "плохо освещён")
	require.Contains(t, advice(entity.Readiness{BrightnessOK: true}), "размыт")
	require.Contains(t, advice(entity.Readiness{FocusOK: true}), "освещением")
}
