package client

import "errors"

var ErrMissingType = errors.New("packet type is required")
var ErrMissingData = errors.New("packet data is required")
var ErrUnknownPacket = errors.New("unknown packet type")
var ErrInboxFull = errors.New("inbox is full")
var ErrUnknownCreature = errors.New("unknown creature")
