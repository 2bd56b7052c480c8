package ui

import "time"

// Icons (emojis/symbols)
const (
	IconPlay    = "▶"
	IconError   = "❌"
	IconMusic   = "🎵"
	IconVideo   = "🎬"
	IconConvert = "🔄"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
	NoImageText         = "No Image"
)

// Window and panel geometry, taken from the fixed 800x600 player layout
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 600

	CarouselWidth  float32 = 600
	CarouselHeight float32 = 200
	SlotTop        float32 = 72

	InfoWidth  float32 = 250
	InfoHeight float32 = 60
	InfoMargin float32 = 10
	InfoTop    float32 = 4

	CardWidth       float32 = 600
	CardHeight      float32 = 320
	CardThumbSize   float32 = 216
	CardCornerRound float32 = 10
	LyricsHeight    float32 = 200

	ControlButtonSize float32 = 50
	ModeButtonWidth   float32 = 100
	ModeButtonHeight  float32 = 40

	CurtainHandleHeight float32 = 10
)

// Layout sizing (TaskRow / lists)
const (
	StatusLabelWidth  float32 = 84
	SpeedLabelWidth   float32 = 100
	PercentLabelWidth float32 = 48

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 56

	FetchDialogWidth  float32 = 640
	FetchDialogHeight float32 = 480
)

// Timing
const (
	InfoFadeDuration   = 200 * time.Millisecond
	ErrorToastAutoHide = 4 * time.Second
)

// Background render size of the lyrics panel
const (
	BackgroundWidth  = 800
	BackgroundHeight = 600
	ThumbnailPixels  = 240
)
