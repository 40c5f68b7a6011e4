package db

const deviceUpsertQ = `
INSERT INTO devices (id, user_id, name, device_type, os, browser, user_agent, ip, location, last_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
ON CONFLICT (user_id, id) DO UPDATE
SET ip = EXCLUDED.ip,
    location = EXCLUDED.location,
    last_active = now()
`

const deviceGetQ = `
SELECT
	id,
	user_id,
	name,
	device_type,
	os,
	browser,
	user_agent,
	ip,
	location,
	last_active,
	created_at
FROM devices
WHERE id = $1 AND user_id = $2
`

const deviceTouchQ = `
UPDATE devices
SET last_active = now()
WHERE id = $1 AND user_id = $2
`

const deviceDeleteQ = `
DELETE FROM devices
WHERE id = $1 AND user_id = $2
`
