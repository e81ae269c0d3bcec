/*
Package preflight checks whether a server correctly answers
[CORS-preflight requests].

A preflight check consists of a single [OPTIONS] request that carries the
[CORS request headers] a browser would send ahead of some cross-origin
request, followed by a fixed sequence of checks of the [CORS response headers]
in the response:

 1. the status code must be an [ok status] that servers conventionally use
    for successful preflight (200 or 204);
 2. [Access-Control-Allow-Origin] must be present;
 3. [Access-Control-Allow-Methods] must be present;
 4. [Access-Control-Allow-Headers] must be present if the request listed
    some headers in [Access-Control-Request-Headers];
 5. [Access-Control-Max-Age], if present, must be an integer, ideally one
    in the 0 to 86400 range.

Each check either passes, fails, or is skipped; a failed check never prevents
the subsequent checks from running.

Bear in mind that checks 2 to 4 are only concerned with the presence of the
relevant response headers, not with their values.
Therefore, a successful preflight check is no guarantee that browsers will
let the actual request through; it merely rules out the most common mistakes,
such as a router that does not let OPTIONS requests reach the CORS middleware.

Package preflight is not concerned with rendering;
it emits display [Record] values to a [Sink] of your choice.

[Access-Control-Allow-Headers]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Allow-Headers
[Access-Control-Allow-Methods]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Allow-Methods
[Access-Control-Allow-Origin]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Allow-Origin
[Access-Control-Max-Age]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Max-Age
[Access-Control-Request-Headers]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Access-Control-Request-Headers
[CORS request headers]: https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS#the_http_request_headers
[CORS response headers]: https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS#the_http_response_headers
[CORS-preflight requests]: https://developer.mozilla.org/en-US/docs/Glossary/Preflight_request
[OPTIONS]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Methods/OPTIONS
[ok status]: https://fetch.spec.whatwg.org/#ok-status
*/
package preflight
