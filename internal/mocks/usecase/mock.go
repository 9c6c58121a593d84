// Package mockusecase provides testify mocks of the use case interfaces used by the HTTP layer.
package mockusecase

import "github.com/stretchr/testify/mock"

func get[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)

	return v
}
