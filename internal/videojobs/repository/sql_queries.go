package repository

const (
	videoJobColumns = `id, prompt, input_image_location, operation_handle, status, output_locations, error_detail, created_at, updated_at`

	createVideoJobQuery = `INSERT INTO video_jobs (id, prompt, input_image_location, status, output_locations, created_at, updated_at)
					VALUES ($1, $2, $3, $4, '[]'::jsonb, NOW(), NOW())
					RETURNING ` + videoJobColumns

	getVideoJobByIDQuery = `SELECT ` + videoJobColumns + ` FROM video_jobs WHERE id = $1`

	updateVideoJobQuery = `UPDATE video_jobs
					SET status = $2,
					    operation_handle = $3,
					    output_locations = $4,
					    error_detail = $5,
					    updated_at = NOW()
					WHERE id = $1 AND status NOT IN ('COMPLETED', 'FAILED')
					RETURNING ` + videoJobColumns
)
