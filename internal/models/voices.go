// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

package models

// KnownVoices lists the prebuilt Gemini TTS voices selectable for narration.
// The catalog is fixed by the speech API; descriptions follow the published
// voice characteristics.
var KnownVoices = []Voice{
	{Name: "Zephyr", Description: "Bright"},
	{Name: "Puck", Description: "Upbeat"},
	{Name: "Charon", Description: "Informative"},
	{Name: "Kore", Description: "Firm"},
	{Name: "Fenrir", Description: "Excitable"},
	{Name: "Leda", Description: "Youthful"},
	{Name: "Orus", Description: "Firm"},
	{Name: "Aoede", Description: "Breezy"},
	{Name: "Callirrhoe", Description: "Easy-going"},
	{Name: "Autonoe", Description: "Bright"},
	{Name: "Enceladus", Description: "Breathy"},
	{Name: "Iapetus", Description: "Clear"},
	{Name: "Umbriel", Description: "Easy-going"},
	{Name: "Algieba", Description: "Smooth"},
	{Name: "Despina", Description: "Smooth"},
	{Name: "Erinome", Description: "Clear"},
	{Name: "Algenib", Description: "Gravelly"},
	{Name: "Rasalgethi", Description: "Informative"},
	{Name: "Laomedeia", Description: "Upbeat"},
	{Name: "Achernar", Description: "Soft"},
	{Name: "Alnilam", Description: "Firm"},
	{Name: "Schedar", Description: "Even"},
	{Name: "Gacrux", Description: "Mature"},
	{Name: "Pulcherrima", Description: "Forward"},
	{Name: "Achird", Description: "Friendly"},
	{Name: "Zubenelgenubi", Description: "Casual"},
	{Name: "Vindemiatrix", Description: "Gentle"},
	{Name: "Sadachbia", Description: "Lively"},
	{Name: "Sadaltager", Description: "Knowledgeable"},
	{Name: "Sulafat", Description: "Warm"},
}

// knownVoiceNames indexes KnownVoices for O(1) lookup.
var knownVoiceNames = func() map[string]struct{} {
	m := make(map[string]struct{}, len(KnownVoices))
	for _, v := range KnownVoices {
		m[v.Name] = struct{}{}
	}
	return m
}()

// IsKnownVoice reports whether name is a selectable TTS voice.
// Voice names are case-sensitive.
func IsKnownVoice(name string) bool {
	_, ok := knownVoiceNames[name]
	return ok
}
