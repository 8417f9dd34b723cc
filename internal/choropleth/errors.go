package choropleth

import "github.com/rotisserie/eris"

// Errors returned by Data and Draw. A geometry without a matching record
// is not an error; it is omitted from the rendered layer.
var (
	ErrMissingConfiguration = eris.New("choropleth: missing configuration")
	ErrUnknownCollection    = eris.New("choropleth: unknown collection")
	ErrInvalidScaleInput    = eris.New("choropleth: invalid scale input")
)
