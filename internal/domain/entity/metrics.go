package entity

// FrameMetrics метрики качества одного кадра
type FrameMetrics struct {
	Focus      float64 `json:"focus"`      // дисперсия лапласиана, чем больше, тем резче
	Brightness float64 `json:"brightness"` // средняя яркость с весами по светимости, 0..255
}

// Readiness флаги готовности к снимку по последнему кадру
type Readiness struct {
	FocusOK      bool
	BrightnessOK bool
}

// Ready сообщает, выполнены ли оба условия.
func (r Readiness) Ready() bool {
	return r.FocusOK && r.BrightnessOK
}

// Assessment результат одного прохода оценщика.
type Assessment struct {
	Metrics   FrameMetrics
	Readiness Readiness
	Width     int // ширина уменьшенного кадра
	Height    int // высота уменьшенного кадра
}
