/*
Package cliparse handles process configuration.

Configuration comes from CLI flags with environment fallbacks:

  - PORT (-p): server port (default: 4152)
  - DATA_FILE (-d): ledger CSV path (default: vote_data.csv)
  - TALLY_RUBRIC (-r): optional rubric YAML file
  - BASE_URL (-u): public voting-form base URL embedded in QR links
    (default: http://localhost:<port>)
  - REFRESH_SECONDS (-refresh): dashboard auto-refresh hint (default: 3)

A .env file in the working directory is loaded by main before parsing,
so all of the above can live there during development.
*/
package cliparse
