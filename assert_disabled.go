//go:build !assert

package pageheap

const checksEnabled = false
