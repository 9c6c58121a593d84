// Package mockservice provides testify mocks of the domain service interfaces.
package mockservice

import "github.com/stretchr/testify/mock"

func get[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)

	return v
}
