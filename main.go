package main

import "github.com/codeready-toolchain/toolchain-cicd/ci-report/cmd"

func main() {
	cmd.Execute()
}
