package main

import "converter/cmd/app"

func main() {
	app.Args.Parse()

	app.StartInit()

	app.InitDefault()
	app.InitConnections()
	rateLimiter := app.InitRateLimiter()
	sentryEnabled := app.InitSentry()
	Router := app.InitRouter(rateLimiter, sentryEnabled)

	app.EndInit()

	app.Start(Router)
}
