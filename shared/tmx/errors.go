package tmx

import "errors"

// Fatal parse errors. Any of these aborts map loading; there is no partial
// map recovery.
var (
	ErrFileNotFound           = errors.New("file not found")
	ErrMissingTileSize        = errors.New("tileset is missing tilewidth/tileheight")
	ErrMissingData            = errors.New("tile layer has no data element")
	ErrUnsupportedEncoding    = errors.New("unsupported tile data encoding")
	ErrUnsupportedCompression = errors.New("unsupported tile data compression")
	ErrMalformedCSV           = errors.New("malformed csv tile data")
	ErrMalformedData          = errors.New("malformed tile data")
	ErrGIDOverflow            = errors.New("tile gid overflows 31 bits")
	ErrInvalidMap             = errors.New("invalid map document")
)
