package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Apply   bool
	Fill    bool
	Subtree bool
	Store   bool
	Server  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Apply = boolEnv("FC_DEBUG_APPLY")
	d.Fill = boolEnv("FC_DEBUG_FILL")
	d.Subtree = boolEnv("FC_DEBUG_SUBTREE")
	d.Store = boolEnv("FC_DEBUG_STORE")
	d.Server = boolEnv("FC_DEBUG_SERVER")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Apply() bool {
	return d.Apply
}
func Fill() bool {
	return d.Fill
}
func Subtree() bool {
	return d.Subtree
}
func Store() bool {
	return d.Store
}
func Server() bool {
	return d.Server
}
