// Package valueobjects содержит неизменяемые самопроверяющиеся значения предметной области.
//
// Значения создаются только фабриками New*, которые проверяют инварианты.
// "Изменение" значения всегда возвращает новый экземпляр.
package valueobjects

import (
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// ValueObject сравнивается по упорядоченному набору компонент, а не по ссылке.
type ValueObject interface {
	EqualityComponents() []any
}

// Equal сообщает, совпадают ли конкретные типы и попарно все компоненты.
func Equal(a, b ValueObject) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	ca, cb := a.EqualityComponents(), b.EqualityComponents()
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if !componentEqual(ca[i], cb[i]) {
			return false
		}
	}
	return true
}

func componentEqual(x, y any) bool {
	if vx, ok := x.(ValueObject); ok {
		vy, ok := y.(ValueObject)
		return ok && Equal(vx, vy)
	}
	return reflect.DeepEqual(x, y)
}

// Hash возвращает стабильный хэш, согласованный с Equal.
// Компоненты не должны содержать указателей.
func Hash(v ValueObject) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(reflect.TypeOf(v).String())
	writeComponents(d, v.EqualityComponents())
	return d.Sum64()
}

func writeComponents(d *xxhash.Digest, components []any) {
	for _, c := range components {
		_, _ = d.Write([]byte{0x1f})
		if vo, ok := c.(ValueObject); ok {
			writeComponents(d, vo.EqualityComponents())
			continue
		}
		_, _ = fmt.Fprintf(d, "%T:%v", c, c)
	}
}
