// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - ParticipationRequest: candidate_name plus a selection (election_type,
    level, category, subcategory, nested_category, position) or a
    position_path
  - ParsePathRequest: position_path

Build requests decode straight into positions.Selection.

# Response Types

  - ElectionTypesResponse: election types and their levels
  - OptionsResponse: selection and the next resolver step
  - ParsePathResponse: recovered selection, or inconsistent + raw_path
  - ParticipationDetail: stored row plus its edit state
  - ListParticipationsResponse: participations, count
  - PositionReport: candidates per office
  - ErrorResponse: error, message, field

# Domain Types

  - Participation: one candidacy, keyed by its canonical position path
*/
package models
