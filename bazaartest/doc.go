// Package bazaartest provides mocks and helpers for testing extensions.
package bazaartest
