package main

import "transaction-anomaly-system/internal/bootstrap/monitor"

func main() { monitor.StartMonitorService() }
