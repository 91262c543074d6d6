//go:build !race

package userservice

func passwordHashCost() int {
	return 14
}
