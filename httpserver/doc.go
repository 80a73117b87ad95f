/*
Package httpserver exposes the meter fleet over a small reporting API.

The server is a collaborator around the core simulation: it only consumes
Reading, Info and Status value objects and never touches meter key
material. No part of the reading-authentication contract depends on it.

API Endpoints:

  - POST /api/meters - register a meter (class, optional explicit identity)
  - GET  /api/meters/{meter_id} - meter description and reading count
  - POST /api/meters/{meter_id}/readings - generate one signed reading,
    optionally at an explicit ?timestamp (epoch milliseconds)
  - POST /api/meters/{meter_id}/verify - verify a reading's authentication
    tag; always answers with a boolean verdict
  - POST /api/fleet/readings - generate one reading per meter, all for the
    same timestamp, in insertion order
  - GET  /api/fleet/status - meter totals and per-meter info records

Health and diagnostics endpoints follow the usual lifecycle conventions:
/livez, /readyz, /drain, /undrain and an optional pprof mount at /debug.
Draining flips readiness off and waits out a configurable period so load
balancers can react before shutdown.
*/
package httpserver
