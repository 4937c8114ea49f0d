// NoSubVOD - Personal Twitch VOD and Live Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nosubvod

/*
Package proxy implements the variant proxy registry: the allowlist that decides
which upstream playlist URLs the relay endpoint is willing to fetch.

Clients never send upstream URLs. Manifest generation registers each rendition
URL and hands out an opaque token; /api/stream/variant.m3u8?id={token}
resolves it back. A URL is admitted only if:

  - its scheme is https
  - its host is, or is a subdomain of, ttvnw.net, twitch.tv, jtvnw.net or
    cloudfront.net
  - its path looks like a playlist or a VOD/chunked rendition

Query parameters outside a fixed allowlist are stripped before storage.
Tokens expire after the configured TTL (300s by default); an expired token is
indistinguishable from one that never existed.
*/
package proxy
