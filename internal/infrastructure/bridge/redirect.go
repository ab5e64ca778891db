package bridge

import (
	"fmt"
	"net/url"

	"focus-cam/internal/domain/port"
)

// Redirector строит адреса перехода от фиксированной базы.
type Redirector struct {
	Base string
}

// NewRedirector возвращает nil, если база не задана: переходы выключены.
func NewRedirector(base string) port.Redirector {
	if base == "" {
		return nil
	}
	return &Redirector{Base: base}
}

// RedirectURL добавляет params к базовому адресу.
func (r *Redirector) RedirectURL(params map[string]string) (string, error) {
	return RedirectURL(r.Base, params)
}

// RedirectURL строит адрес перехода для хоста: к base добавляются params,
// существующие параметры с теми же именами перезаписываются.
func RedirectURL(base string, params map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse redirect base: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("redirect base %q is not an absolute url", base)
	}

	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
