// Package util holds small helpers shared by the eliza packages.
package util
