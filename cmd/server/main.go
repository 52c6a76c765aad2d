package main

import "payslip/internal/app/server"

func main() {
	server.Run()
}
