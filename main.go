package main

import (
	"github.com/tanpawarit/Chative-Travel-Assistant/cmd"
	_ "github.com/tanpawarit/Chative-Travel-Assistant/pkg/logger/autoload"
)

func main() {
	cmd.Execute()
}
