package main

import (
	"os"

	cawebenv "github.com/CA-CODE-Works/cawebenv/internal/apps/cawebenv/cmds"
	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/runtime"
)

func main() {
	logs.SetComponent(detectComponent("cawebenv"))

	var execErr error

	rt := runtime.NewHostRuntime()
	defer rt.Finalize("cawebenv", "Type 'cawebenv help' to get help.", &execErr)

	execErr = cawebenv.Execute(rt)
}

func detectComponent(base string) string {
	if len(os.Args) > 1 && len(os.Args[1]) > 0 && os.Args[1][0] != '-' {
		return base + ":" + os.Args[1]
	}
	return base
}
