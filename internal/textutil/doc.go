// Package textutil sanitizes user-supplied names before they are used as
// file names, such as batch export output names.
package textutil
