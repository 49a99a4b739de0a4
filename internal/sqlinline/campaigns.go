package sqlinline

const QInsertCampaign = `--sql e20b79c8-3649-4919-a037-57d19710fdc9
insert into campaigns(id, user_id, title, description, goal_amount, mode, category, slug, theme_color, cover_image_url, is_public, end_date, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::bigint, $5::text, $6::text, $7::text, $8::text, $9::text, $10::boolean, $11::timestamptz, now())
returning id, created_at;
`

const QSelectCampaignByID = `--sql 043fd86f-3a30-4b1e-96fc-c0e310f10c6e
select id, user_id, title, coalesce(description, ''), goal_amount, mode, category, slug, coalesce(theme_color, ''), coalesce(cover_image_url, ''), is_public, end_date, created_at
from campaigns
where id = $1::uuid
limit 1;
`

const QSelectCampaignBySlug = `--sql 87d6939f-aa24-453c-bac1-4e1f6bf6e169
select id, user_id, title, coalesce(description, ''), goal_amount, mode, category, slug, coalesce(theme_color, ''), coalesce(cover_image_url, ''), is_public, end_date, created_at
from campaigns
where slug = $1::text
limit 1;
`

const QUpdateCampaignCover = `--sql 3b1f42da-5f7a-4e0f-9c64-8be2f4a7d215
update campaigns
set cover_image_url = $2::text
where id = $1::uuid
returning id, user_id, title, coalesce(description, ''), goal_amount, mode, category, slug, coalesce(theme_color, ''), coalesce(cover_image_url, ''), is_public, end_date, created_at;
`

const QListCampaignsByOwner = `--sql 5e9ca6dc-9d84-4cf2-b36c-a099efd44c21
select id, user_id, title, coalesce(description, ''), goal_amount, mode, category, slug, coalesce(theme_color, ''), coalesce(cover_image_url, ''), is_public, end_date, created_at
from campaigns
where user_id = $1::uuid
order by created_at desc;
`
