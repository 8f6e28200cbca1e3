// Package input defines the identifier types for the physical and
// virtual inputs macrod can synthesize: keyboard keys, mouse buttons,
// and joystick axes, buttons, and hats.
package input

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key by its hardware scan code. Extended
// keys (right control, arrow cluster, etc.) share scan codes with
// non-extended keys and are disambiguated by the flag.
type Key struct {
	ScanCode uint16
	Extended bool
}

// IsValid reports whether the key carries a usable scan code.
func (k Key) IsValid() bool { return k.ScanCode != 0 }

// String returns the key's canonical name, or its raw scan code when
// the key has no name in the table.
func (k Key) String() string {
	for name, key := range keysByName {
		if key == k {
			return name
		}
	}
	if k.Extended {
		return fmt.Sprintf("0xE0%02X", k.ScanCode)
	}
	return fmt.Sprintf("0x%02X", k.ScanCode)
}

// KeyFromName resolves a canonical key name (case-insensitive) to its
// scan code.
func KeyFromName(name string) (Key, error) {
	k, ok := keysByName[strings.ToLower(name)]
	if !ok {
		return Key{}, fmt.Errorf("input: unknown key name %q", name)
	}
	return k, nil
}

// keysByName maps canonical names to PC scan set 1 make codes.
var keysByName = map[string]Key{
	"escape":      {ScanCode: 0x01},
	"1":           {ScanCode: 0x02},
	"2":           {ScanCode: 0x03},
	"3":           {ScanCode: 0x04},
	"4":           {ScanCode: 0x05},
	"5":           {ScanCode: 0x06},
	"6":           {ScanCode: 0x07},
	"7":           {ScanCode: 0x08},
	"8":           {ScanCode: 0x09},
	"9":           {ScanCode: 0x0A},
	"0":           {ScanCode: 0x0B},
	"minus":       {ScanCode: 0x0C},
	"equals":      {ScanCode: 0x0D},
	"backspace":   {ScanCode: 0x0E},
	"tab":         {ScanCode: 0x0F},
	"q":           {ScanCode: 0x10},
	"w":           {ScanCode: 0x11},
	"e":           {ScanCode: 0x12},
	"r":           {ScanCode: 0x13},
	"t":           {ScanCode: 0x14},
	"y":           {ScanCode: 0x15},
	"u":           {ScanCode: 0x16},
	"i":           {ScanCode: 0x17},
	"o":           {ScanCode: 0x18},
	"p":           {ScanCode: 0x19},
	"enter":       {ScanCode: 0x1C},
	"leftcontrol": {ScanCode: 0x1D},
	"a":           {ScanCode: 0x1E},
	"s":           {ScanCode: 0x1F},
	"d":           {ScanCode: 0x20},
	"f":           {ScanCode: 0x21},
	"g":           {ScanCode: 0x22},
	"h":           {ScanCode: 0x23},
	"j":           {ScanCode: 0x24},
	"k":           {ScanCode: 0x25},
	"l":           {ScanCode: 0x26},
	"leftshift":   {ScanCode: 0x2A},
	"z":           {ScanCode: 0x2C},
	"x":           {ScanCode: 0x2D},
	"c":           {ScanCode: 0x2E},
	"v":           {ScanCode: 0x2F},
	"b":           {ScanCode: 0x30},
	"n":           {ScanCode: 0x31},
	"m":           {ScanCode: 0x32},
	"rightshift":  {ScanCode: 0x36},
	"leftalt":     {ScanCode: 0x38},
	"space":       {ScanCode: 0x39},
	"capslock":    {ScanCode: 0x3A},
	"f1":          {ScanCode: 0x3B},
	"f2":          {ScanCode: 0x3C},
	"f3":          {ScanCode: 0x3D},
	"f4":          {ScanCode: 0x3E},
	"f5":          {ScanCode: 0x3F},
	"f6":          {ScanCode: 0x40},
	"f7":          {ScanCode: 0x41},
	"f8":          {ScanCode: 0x42},
	"f9":          {ScanCode: 0x43},
	"f10":         {ScanCode: 0x44},
	"f11":         {ScanCode: 0x57},
	"f12":         {ScanCode: 0x58},

	// Extended cluster.
	"rightcontrol": {ScanCode: 0x1D, Extended: true},
	"rightalt":     {ScanCode: 0x38, Extended: true},
	"home":         {ScanCode: 0x47, Extended: true},
	"up":           {ScanCode: 0x48, Extended: true},
	"pageup":       {ScanCode: 0x49, Extended: true},
	"left":         {ScanCode: 0x4B, Extended: true},
	"right":        {ScanCode: 0x4D, Extended: true},
	"end":          {ScanCode: 0x4F, Extended: true},
	"down":         {ScanCode: 0x50, Extended: true},
	"pagedown":     {ScanCode: 0x51, Extended: true},
	"insert":       {ScanCode: 0x52, Extended: true},
	"delete":       {ScanCode: 0x53, Extended: true},
}
