package model

// HassAPIObject is the generic interface for the different WebSocket message types
type HassAPIObject interface {
	GetID() uint64
	GetType() string
	Duplicate(uint64) HassAPIObject
}
