package main

import (
	"flag"

	"transaction-anomaly-system/internal/bootstrap/simulator"
)

func main() {
	count := flag.Int("count", 10, "number of transactions to generate in batch mode")
	daemon := flag.Bool("daemon", false, "run continuously until interrupted")
	flag.Parse()

	simulator.StartSimulator(*count, *daemon)
}
