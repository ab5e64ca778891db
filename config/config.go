package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName имя каталога данных приложения.
const AppName = "focus-cam"

// HistoryMemory значение DB_PATH, при котором история хранится только в памяти.
const HistoryMemory = "memory"

// Thresholds пороги готовности к снимку.
type Thresholds struct {
	Focus         float64 `yaml:"focus"`
	MinBrightness float64 `yaml:"min_brightness"`
	MaxBrightness float64 `yaml:"max_brightness"`
}

type Config struct {
	TelegramToken string

	UploadURL     string
	UploadField   string
	UploadTimeout time.Duration

	CameraDevice int
	StillImage   string // файл, который подставляется вместо камеры
	Estimator    string // native или gocv

	FrameWidth   int
	FrameHeight  int
	Thresholds   Thresholds
	TickInterval time.Duration
	JPEGQuality  int

	HTTPAddr     string
	DBPath       string
	RedirectBase string
	OutboxSize   int
}

// fileConfig необязательный YAML-файл с настройками оценщика.
type fileConfig struct {
	FrameWidth   int         `yaml:"frame_width"`
	FrameHeight  int         `yaml:"frame_height"`
	TickInterval string      `yaml:"tick_interval"`
	JPEGQuality  int         `yaml:"jpeg_quality"`
	Thresholds   *Thresholds `yaml:"thresholds"`
}

// Default возвращает настройки по умолчанию.
func Default() *Config {
	return &Config{
		UploadField:   "file",
		UploadTimeout: 30 * time.Second,
		Estimator:     "native",
		FrameWidth:    320,
		FrameHeight:   240,
		Thresholds: Thresholds{
			Focus:         100,
			MinBrightness: 80,
			MaxBrightness: 220,
		},
		TickInterval: time.Second / 15,
		JPEGQuality:  90,
		HTTPAddr:     ":8080",
		DBPath:       filepath.Join(xdg.DataHome, AppName, "captures.db"),
		OutboxSize:   64,
	}
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("FOCUSCAM_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	// Ключи, которых нет в файле, сохраняют текущие значения.
	th := c.Thresholds
	fc := fileConfig{Thresholds: &th}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.FrameWidth > 0 {
		c.FrameWidth = fc.FrameWidth
	}
	if fc.FrameHeight > 0 {
		c.FrameHeight = fc.FrameHeight
	}
	if fc.JPEGQuality > 0 {
		c.JPEGQuality = fc.JPEGQuality
	}
	if fc.TickInterval != "" {
		d, err := time.ParseDuration(fc.TickInterval)
		if err != nil {
			return fmt.Errorf("parse tick_interval: %w", err)
		}
		c.TickInterval = d
	}
	c.Thresholds = th
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.TelegramToken, "TELEGRAM_TOKEN")
	setString(&c.UploadURL, "UPLOAD_URL")
	setString(&c.UploadField, "UPLOAD_FIELD")
	setString(&c.StillImage, "STILL_IMAGE")
	setString(&c.Estimator, "ESTIMATOR")
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.DBPath, "DB_PATH")
	setString(&c.RedirectBase, "REDIRECT_BASE")

	ints := map[string]*int{
		"CAMERA_DEVICE": &c.CameraDevice,
		"FRAME_WIDTH":   &c.FrameWidth,
		"FRAME_HEIGHT":  &c.FrameHeight,
		"JPEG_QUALITY":  &c.JPEGQuality,
		"OUTBOX_SIZE":   &c.OutboxSize,
	}
	for key, dst := range ints {
		if err := setInt(dst, key); err != nil {
			return err
		}
	}

	floats := map[string]*float64{
		"FOCUS_THRESHOLD": &c.Thresholds.Focus,
		"MIN_BRIGHTNESS":  &c.Thresholds.MinBrightness,
		"MAX_BRIGHTNESS":  &c.Thresholds.MaxBrightness,
	}
	for key, dst := range floats {
		if err := setFloat(dst, key); err != nil {
			return err
		}
	}

	if err := setDuration(&c.TickInterval, "TICK_INTERVAL"); err != nil {
		return err
	}
	return setDuration(&c.UploadTimeout, "UPLOAD_TIMEOUT")
}

// Validate отклоняет бессмысленные значения.
func (c *Config) Validate() error {
	var errs []error
	if c.FrameWidth < 3 || c.FrameHeight < 3 {
		errs = append(errs, fmt.Errorf("frame size %dx%d is too small", c.FrameWidth, c.FrameHeight))
	}
	if c.Thresholds.Focus < 0 {
		errs = append(errs, errors.New("focus threshold must not be negative"))
	}
	if c.Thresholds.MinBrightness >= c.Thresholds.MaxBrightness {
		errs = append(errs, errors.New("min brightness must be below max brightness"))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, errors.New("tick interval must be positive"))
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("jpeg quality %d is out of range 1..100", c.JPEGQuality))
	}
	if c.Estimator != "native" && c.Estimator != "gocv" {
		errs = append(errs, fmt.Errorf("unknown estimator %q", c.Estimator))
	}
	return errors.Join(errs...)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
