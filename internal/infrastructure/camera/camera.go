package camera

import "errors"

// ErrSourceClosed возвращается при чтении из закрытого источника.
var ErrSourceClosed = errors.New("frame source is closed")
