// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the route table using Go 1.22+ method patterns.

# Routes

Dataset management:

	POST   /datasets                    upload a CSV batch
	GET    /datasets                    list datasets
	GET    /datasets/{id}               dataset metadata
	DELETE /datasets/{id}               delete (admin key)

Map view pipeline:

	GET /datasets/{id}/locations        markers + summary + legend
	GET /datasets/{id}/summary          leaderboards only

Simulated live stream:

	POST /datasets/{id}/live/start      begin ticking (admin key)
	POST /datasets/{id}/live/stop       stop ticking (admin key)
	GET  /datasets/{id}/live            status

Conversational assistant:

	POST /datasets/{id}/chat            one transcript turn
	POST /datasets/{id}/chat/reset      re-prime session context
*/
package router
