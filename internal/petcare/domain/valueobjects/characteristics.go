package valueobjects

import (
	"math"
	"strings"
	"unicode/utf8"

	"petcare/internal/petcare/domain/domainerr"
)

// MaxColorLength - максимальная длина описания окраса.
const MaxColorLength = 50

var (
	ErrInvalidWeight = domainerr.InvalidArgument("weight must be positive")
	ErrInvalidHeight = domainerr.InvalidArgument("height must be positive")
	ErrColorTooLong  = domainerr.InvalidArgument("color exceeds %d characters", MaxColorLength)
)

// PhysicalCharacteristics - необязательные вес (кг), рост (см) и окрас животного.
type PhysicalCharacteristics struct {
	weight    float64
	hasWeight bool
	height    float64
	hasHeight bool
	color     string
}

// NewPhysicalCharacteristics принимает nil для неизвестных веса и роста и пустой окрас.
func NewPhysicalCharacteristics(weight, height *float64, color string) (PhysicalCharacteristics, error) {
	var pc PhysicalCharacteristics
	if weight != nil {
		if !positive(*weight) {
			return PhysicalCharacteristics{}, ErrInvalidWeight
		}
		pc.weight, pc.hasWeight = *weight, true
	}
	if height != nil {
		if !positive(*height) {
			return PhysicalCharacteristics{}, ErrInvalidHeight
		}
		pc.height, pc.hasHeight = *height, true
	}
	c := strings.TrimSpace(color)
	if utf8.RuneCountInString(c) > MaxColorLength {
		return PhysicalCharacteristics{}, ErrColorTooLong
	}
	pc.color = c
	return pc, nil
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

// Weight возвращает вес и признак его наличия.
func (p PhysicalCharacteristics) Weight() (float64, bool) { return p.weight, p.hasWeight }

// Height возвращает рост и признак его наличия.
func (p PhysicalCharacteristics) Height() (float64, bool) { return p.height, p.hasHeight }

func (p PhysicalCharacteristics) Color() string { return p.color }

func (p PhysicalCharacteristics) WithWeight(weight float64) (PhysicalCharacteristics, error) {
	return NewPhysicalCharacteristics(&weight, p.HeightPtr(), p.color)
}

func (p PhysicalCharacteristics) WithHeight(height float64) (PhysicalCharacteristics, error) {
	return NewPhysicalCharacteristics(p.WeightPtr(), &height, p.color)
}

func (p PhysicalCharacteristics) WithColor(color string) (PhysicalCharacteristics, error) {
	return NewPhysicalCharacteristics(p.WeightPtr(), p.HeightPtr(), color)
}

// WeightPtr возвращает копию веса или nil.
func (p PhysicalCharacteristics) WeightPtr() *float64 {
	if !p.hasWeight {
		return nil
	}
	w := p.weight
	return &w
}

func (p PhysicalCharacteristics) HeightPtr() *float64 {
	if !p.hasHeight {
		return nil
	}
	h := p.height
	return &h
}

func (p PhysicalCharacteristics) EqualityComponents() []any {
	return []any{optional(p.weight, p.hasWeight), optional(p.height, p.hasHeight), p.color}
}

func optional(v float64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}
